package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
)

const directorySheet = "Tutor Directory"

type exportService struct {
	repo      repositories.Repository
	directory DirectoryService
	logger    *slog.Logger
}

func NewExportService(repo repositories.Repository, directory DirectoryService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:      repo,
		directory: directory,
		logger:    logger,
	}
}

// ExportDirectory renders every directory entry, seeded and registered,
// to an xlsx workbook with one row per tutor and a trailing stats sheet.
func (s *exportService) ExportDirectory(ctx context.Context) ([]byte, error) {
	result, err := s.directory.Search(ctx, "", FilterAll, FilterAll)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", directorySheet)

	headers := []string{"ID", "Name", "Subjects", "Courses", "Year", "CGPA", "Faculty", "Rating", "Reviews", "Availability", "Session Types"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(directorySheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, tutor := range result.Tutors {
		values := []interface{}{
			tutor.ID,
			tutor.Name,
			strings.Join(tutor.Subjects, ", "),
			strings.Join(tutor.Courses, ", "),
			tutor.Year,
			tutor.CGPA,
			tutor.Faculty,
			tutor.Rating,
			tutor.Reviews,
			tutor.Availability,
			strings.Join(tutor.SessionTypes, ", "),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(directorySheet, cell, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	if err := s.writeStatsSheet(ctx, f); err != nil {
		s.logger.WarnContext(ctx, "Failed to write stats sheet", "error", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "Directory exported", "tutors", len(result.Tutors))
	return buf.Bytes(), nil
}

func (s *exportService) writeStatsSheet(ctx context.Context, f *excelize.File) error {
	dirStats, err := s.repo.TutorListing().Stats(ctx)
	if err != nil {
		return err
	}
	sessionStats, err := s.repo.Session().Stats(ctx)
	if err != nil {
		return err
	}

	const sheet = "Stats"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Curated listings", dirStats.SeedListings},
		{"Registered tutors", dirStats.TutorAccounts},
		{"Average listing rating", dirStats.AverageRating},
		{"Total sessions", sessionStats.TotalSessions},
		{"Completed sessions", sessionStats.CompletedSessions},
		{"Rated sessions", sessionStats.RatedSessions},
		{"Average session rating", sessionStats.AverageRating},
	}
	for i, row := range rows {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return err
		}
	}

	return nil
}
