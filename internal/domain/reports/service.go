package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"perftrack/internal/domain/document"
	"perftrack/internal/domain/performance"
)

type Service struct {
	Store    DocumentStore
	Location *time.Location
	Now      func() time.Time
}

func NewService(store DocumentStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{Store: store, Location: loc, Now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) Dashboard {
	doc := s.Store.Load(ctx)
	now := s.Now().In(s.Location)
	return BuildDashboard(doc, now.Format(document.DateLayout), now.Format(document.MonthLayout))
}

// BuildDashboard counts the headline figures for one day and month.
func BuildDashboard(doc document.Document, today, month string) Dashboard {
	d := Dashboard{Date: today, Categories: len(doc.Categories), RatingsTotal: len(doc.Ratings)}
	for _, emp := range doc.Employees {
		if emp.IsArchived {
			d.ArchivedEmployees++
		} else {
			d.ActiveEmployees++
		}
	}
	for _, r := range doc.Ratings {
		if r.IsAdminRating {
			d.AdminRatings++
		} else {
			d.PeerRatings++
		}
	}
	for _, task := range doc.DailyTasks {
		if task.Date != today {
			continue
		}
		d.TasksToday++
		if task.Completed {
			d.TasksCompletedToday++
		}
	}
	for _, report := range doc.TaskIncompleteReports {
		if report.Date == today {
			d.IncompleteReportsToday++
		}
	}
	for _, rule := range doc.Rules {
		if rule.IsActive {
			d.ActiveRules++
		}
	}
	for _, v := range doc.Violations {
		if v.Date == today {
			d.ViolationsToday++
		}
	}
	for _, rec := range doc.MonthlyLeaves {
		if rec.Month == month {
			d.LeavesTakenThisMonth += rec.LeavesTaken
		}
	}
	if board := performance.Leaderboard(doc); len(board) > 0 {
		top := board[0]
		d.TopPerformer = &top
	}
	return d
}

// LeaderboardPDF renders the current leaderboard as an A4 PDF.
func (s *Service) LeaderboardPDF(ctx context.Context, w io.Writer) error {
	board := performance.Leaderboard(s.Store.Load(ctx))
	generated := s.Now().In(s.Location).Format("2006-01-02 15:04")
	return WriteLeaderboardPDF(w, board, generated)
}

func WriteLeaderboardPDF(w io.Writer, board []performance.Standing, generated string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Leaderboard")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated))
	pdf.Ln(10)

	widths := []float64{12, 64, 26, 26, 26, 26}
	headers := []string{"#", "Employee", "Score", "Attendance", "Admin", "Peer"}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, st := range board {
		cells := []string{
			fmt.Sprintf("%d", st.Rank),
			tr(st.Employee.Name),
			fmt.Sprintf("%.2f", st.Weighted),
			fmt.Sprintf("%.2f", st.Attendance),
			componentText(st.HasAdminRating, st.Admin),
			componentText(st.HasPeerRating, st.Peer),
		}
		for i, c := range cells {
			align := "C"
			if i == 1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(board) == 0 {
		pdf.Cell(0, 8, "No active employees.")
	}
	return pdf.Output(w)
}

func componentText(present bool, value float64) string {
	if !present {
		return "-"
	}
	return fmt.Sprintf("%.2f", value)
}
