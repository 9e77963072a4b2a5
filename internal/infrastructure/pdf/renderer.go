// Package pdf renders plan reports as downloadable documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/nutriquiz/backend/internal/domain"
)

const (
	marginMm   = 20
	lineHeight = 6
)

// Renderer draws a PlanReport on A4 pages with the core Helvetica font
type Renderer struct {
	title    string
	compress bool
}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{title: "Personalized Plan", compress: true}
}

// Render returns the PDF bytes of report
func (r *Renderer) Render(report *domain.PlanReport) ([]byte, error) {
	if report == nil || report.Target == nil {
		return nil, domain.ErrInvalidRequest
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(r.compress)
	doc.SetMargins(marginMm, marginMm, marginMm)
	doc.SetAutoPageBreak(true, marginMm)
	doc.SetTitle(r.title, true)
	doc.SetCreator("NutriQuiz", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	r.header(doc, tr, report)
	r.metrics(doc, tr, report)
	r.meals(doc, tr, report)
	r.analysis(doc, tr, report)

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(doc *fpdf.Fpdf, tr func(string) string, report *domain.PlanReport) {
	sub := report.Submission

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, tr(r.title))
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	name := sub.Name
	if name == "" {
		name = "-"
	}
	line(doc, tr, "Name: %s", name)
	line(doc, tr, "Goal: %s | Target: %d kcal", titleCase(string(sub.Goal)), report.Target.TargetKcal)
	line(doc, tr, "Weight: %g kg | Height: %g cm | Age: %d", sub.WeightKg, sub.HeightCm, sub.AgeYears)
}

func (r *Renderer) metrics(doc *fpdf.Fpdf, tr func(string) string, report *domain.PlanReport) {
	t := report.Target
	doc.Ln(2)
	doc.SetFont("Helvetica", "", 10)
	line(doc, tr, "BMR: %d kcal | TDEE: %d kcal", t.BMR, t.TDEE)
	line(doc, tr, "BMI: %.1f (%s)", t.BMI.Value, t.BMI.Status)
	line(doc, tr, "Ideal weight: %.1f kg | Water: %.0f ml per day", report.IdealWeightKg, report.DailyWaterMl)
	if t.MotivationalPhrase != "" {
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, lineHeight, tr(t.MotivationalPhrase), "", "L", false)
	}
}

func (r *Renderer) meals(doc *fpdf.Fpdf, tr func(string) string, report *domain.PlanReport) {
	for _, slot := range domain.MealSlots {
		plan, ok := report.Plan[slot]
		if !ok {
			continue
		}

		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 12)
		line(doc, tr, "%s (%d kcal)", slot.Label(), plan.MetaKcal)

		doc.SetFont("Helvetica", "", 10)
		if len(plan.Options) == 0 {
			line(doc, tr, "  No foods selected")
			continue
		}
		for _, opt := range plan.Options {
			line(doc, tr, "  %s - %s (%d kcal)", opt.Description, opt.QuantityLabel, opt.Kcal)
		}
	}
}

func (r *Renderer) analysis(doc *fpdf.Fpdf, tr func(string) string, report *domain.PlanReport) {
	a := report.Analysis

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	line(doc, tr, "Consumption analysis")

	doc.SetFont("Helvetica", "", 10)
	line(doc, tr, "Consumed: %d kcal (%d%% of target)", a.TotalConsumedKcal, report.ConsumptionPercent)
	if report.CaloriesToBurn > 0 {
		line(doc, tr, "To stay on target, burn %d kcal today", report.CaloriesToBurn)
	}

	for _, rec := range a.Recommendations {
		text := fmt.Sprintf("%s: swap %s, %s (%d kcal) for %s, %s (%d kcal), saving %d kcal",
			rec.SlotLabel,
			rec.Original, rec.OriginalPortion, rec.OriginalKcal,
			rec.Substitute, rec.SubstitutePortion, rec.SubstituteKcal,
			rec.Savings,
		)
		doc.MultiCell(0, lineHeight, tr(text), "", "L", false)
	}
}

func line(doc *fpdf.Fpdf, tr func(string) string, format string, args ...interface{}) {
	doc.Cell(0, lineHeight, tr(fmt.Sprintf(format, args...)))
	doc.Ln(lineHeight)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
