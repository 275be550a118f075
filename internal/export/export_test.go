package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/model"
)

// buildTestResults plans a realistic job: two planned profiles and one
// that fails validation.
func buildTestResults(t *testing.T) []model.ProfileResult {
	t.Helper()
	profiles := []model.Profile{
		model.NewProfile("MARCO-20", 0.512, 6000, 4.5,
			model.NewCutGroup(4000, 2, model.Angle90),
			model.NewCutGroup(2000, 1, model.Angle45),
		),
		model.NewProfile("HOJA-20", 0.436, 6200, 4.5,
			model.CutGroup{Label: "Jamb", Length: 1450, Adjustment: model.AdjustSubtract, AdjustBy: 12, Quantity: 6, Angle: model.Angle45},
			model.NewCutGroup(780, 4, model.Angle90),
		),
		model.NewProfile("TUBO", 0.462, 6000, 4.5, model.NewCutGroup(7000, 1, model.Angle90)),
	}

	results := make([]model.ProfileResult, len(profiles))
	for i, p := range profiles {
		plan, err := engine.Plan(p)
		results[i] = model.ProfileResult{Profile: p, Plan: plan, Err: err}
	}
	if results[2].OK() {
		t.Fatal("expected TUBO to fail validation")
	}
	return results
}

func assertFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("file is empty")
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func writeTestLogo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logo.png")
	img := image.NewRGBA(image.Rect(0, 0, 60, 20))
	for x := 0; x < 60; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 4), B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create logo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	return path
}

// ─── PDF Tests ─────────────────────────────────────────────

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	if err := ExportPDF(path, buildTestResults(t), PDFOptions{}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportPDF_WithLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.pdf")

	opts := PDFOptions{Title: "Obra Ramírez", LogoPath: writeTestLogo(t)}
	if err := ExportPDF(path, buildTestResults(t), opts); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportPDF_MissingLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nologo.pdf")

	err := ExportPDF(path, buildTestResults(t), PDFOptions{LogoPath: "/nonexistent/logo.png"})
	if err == nil {
		t.Fatal("expected error for missing logo")
	}
}

func TestExportPDF_ManyBarsSpanPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.pdf")

	p := model.NewProfile("LONG", 0.5, 6000, 4, model.NewCutGroup(3500, 60, model.Angle90))
	plan, err := engine.Plan(p)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Bars) != 60 {
		t.Fatalf("expected 60 bars, got %d", len(plan.Bars))
	}

	if err := ExportPDF(path, []model.ProfileResult{{Profile: p, Plan: plan}}, PDFOptions{}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 2000)
}

func TestExportPDF_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_plan.pdf")

	p := model.NewProfile("EMPTY", 0.5, 6000, 4)
	plan, _ := engine.Plan(p)
	if err := ExportPDF(path, []model.ProfileResult{{Profile: p, Plan: plan}}, PDFOptions{}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportPDF_NoProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")
	if err := ExportPDF(path, nil, PDFOptions{}); err == nil {
		t.Fatal("expected error for no profiles, got nil")
	}
}

// ─── Label Tests ───────────────────────────────────────────

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResults(t)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportLabels_NoCuts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	p := model.NewProfile("EMPTY", 0.5, 6000, 4)
	plan, _ := engine.Plan(p)
	if err := ExportLabels(path, []model.ProfileResult{{Profile: p, Plan: plan}}); err == nil {
		t.Fatal("expected error for a plan with no cuts")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestResults(t))

	// 3 MARCO cuts + 10 HOJA cuts, nothing for the failed profile
	if len(labels) != 13 {
		t.Fatalf("expected 13 labels, got %d", len(labels))
	}

	first := labels[0]
	if first.ProfileCode != "MARCO-20" || first.Length != 4000 || first.Angle != 90 {
		t.Errorf("unexpected first label %+v", first)
	}
	if first.Bar != 1 || first.Piece != 1 {
		t.Errorf("expected bar 1 piece 1, got bar %d piece %d", first.Bar, first.Piece)
	}
	if labels[1].Length != 2000 || labels[1].Piece != 2 || labels[1].Angle != 45 {
		t.Errorf("unexpected second label %+v", labels[1])
	}
	if labels[2].Bar != 2 {
		t.Errorf("expected third label on bar 2, got %d", labels[2].Bar)
	}

	jamb := labels[3]
	if jamb.ProfileCode != "HOJA-20" || jamb.Label != "Jamb" || jamb.Length != 1438 {
		t.Errorf("expected adjusted Jamb label, got %+v", jamb)
	}
}

// ─── Sheet name Tests ──────────────────────────────────────

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}

	if got := uniqueSheetName("MARCO/20", used); got != "MARCO_20" {
		t.Errorf("expected MARCO_20, got %q", got)
	}
	if got := uniqueSheetName("marco/20", used); got != "marco_20 (2)" {
		t.Errorf("expected duplicate suffix, got %q", got)
	}
	if got := uniqueSheetName("Summary", used); got != "Summary (2)" {
		t.Errorf("expected Summary to be reserved, got %q", got)
	}
	if got := uniqueSheetName("", used); got != "Profile" {
		t.Errorf("expected Profile for empty code, got %q", got)
	}

	long := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	first := uniqueSheetName(long, used)
	if len(first) != 31 {
		t.Errorf("expected 31 characters, got %d", len(first))
	}
	second := uniqueSheetName(long, used)
	if len(second) != 31 || second == first {
		t.Errorf("expected distinct 31-character name, got %q", second)
	}
}
