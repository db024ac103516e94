package lv2

import (
	"path/filepath"
	"testing"
)

const sampleManifest = `@prefix lv2:  <http://lv2plug.in/ns/lv2core#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

<http://moddevices.com/plugins/mod-devel/BigMuff>
    a lv2:Plugin ;
    rdfs:seeAlso <bigmuff.ttl> .
`

const sampleTTL = `@prefix doap: <http://usefulinc.com/ns/doap#> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix lv2:  <http://lv2plug.in/ns/lv2core#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

<http://moddevices.com/plugins/mod-devel/BigMuff>
    a lv2:Plugin, lv2:DistortionPlugin ;
    doap:name "Big Muff" ;
    doap:license <http://opensource.org/licenses/GPL-3.0> ;
    lv2:minorVersion 2 ;
    lv2:microVersion 1 ;
    rdfs:comment "Classic fuzz pedal emulation." ;
    doap:maintainer [
        foaf:name "MOD Audio" ;
    ] .
`

func TestScanMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifest.ttl"), sampleManifest)
	writeFile(t, filepath.Join(dir, "bigmuff.ttl"), sampleTTL)

	meta, err := ScanMetadata(dir)
	if err != nil {
		t.Fatalf("ScanMetadata failed: %v", err)
	}

	if meta.URI != "http://moddevices.com/plugins/mod-devel/BigMuff" {
		t.Errorf("URI = %q", meta.URI)
	}
	if meta.Name != "Big Muff" {
		t.Errorf("Name = %q", meta.Name)
	}
	if meta.License != "gpl-3.0" {
		t.Errorf("License = %q, want gpl-3.0", meta.License)
	}
	if meta.Comment != "Classic fuzz pedal emulation." {
		t.Errorf("Comment = %q", meta.Comment)
	}
	if meta.Author != "MOD Audio" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.Minor != 2 || meta.Micro != 1 {
		t.Errorf("version = %d.%d, want 2.1", meta.Minor, meta.Micro)
	}
	if len(meta.Types) != 1 || meta.Types[0] != "DistortionPlugin" {
		t.Errorf("Types = %v", meta.Types)
	}
}

func TestScanMetadataEmptyBundle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "manifest.ttl"), "@prefix lv2: <http://lv2plug.in/ns/lv2core#> .\n")

	meta, err := ScanMetadata(dir)
	if err != nil {
		t.Fatalf("ScanMetadata failed: %v", err)
	}
	if meta.Name != "" || meta.License != "" || meta.Author != "" {
		t.Errorf("expected empty metadata, got %+v", meta)
	}
	if meta.Revision() != "0.0" {
		t.Errorf("Revision() = %q, want 0.0", meta.Revision())
	}
}

func TestScanMetadataTripleQuotedComment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "plugin.ttl"), `
<urn:x> a lv2:Plugin ;
    rdfs:comment """Line one.
Line two.""" .
`)

	meta, err := ScanMetadata(dir)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Comment != "Line one.\nLine two." {
		t.Errorf("Comment = %q", meta.Comment)
	}
}

func TestScanMetadataBlacklistedComment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "plugin.ttl"), `<urn:x> rdfs:comment "..." .`)

	meta, err := ScanMetadata(dir)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Comment != "" {
		t.Errorf("Comment = %q, ellipsis placeholder should be dropped", meta.Comment)
	}
}

func TestScanMetadataScreenshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "modgui", "screenshot-bigmuff.png"), "png-bytes")
	writeFile(t, filepath.Join(dir, "modgui.ttl"), `
<urn:x> modgui:gui [
    modgui:resourcesDirectory <modgui> ;
    modgui:screenshot <modgui/screenshot-bigmuff.png> ;
] .
`)

	meta, err := ScanMetadata(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "modgui", "screenshot-bigmuff.png")
	if meta.Screenshot != want {
		t.Errorf("Screenshot = %q, want %q", meta.Screenshot, want)
	}
}

func TestScanMetadataScreenshotMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "modgui.ttl"), `<urn:x> modgui:screenshot <modgui/gone.png> .`)

	meta, err := ScanMetadata(dir)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Screenshot != "" {
		t.Errorf("Screenshot = %q, reference to a missing file must be dropped", meta.Screenshot)
	}
}

func TestNormalizeLicense(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://opensource.org/licenses/GPL-3.0", "gpl-3.0"},
		{"https://spdx.org/licenses/MIT", "mit"},
		{"http://usefulinc.com/doap/licenses/gpl#id", "id"},
		{"GPL-2.0+", "gpl-2.0+"},
		{"http://example.com/license/", "license"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeLicense(tt.input); got != tt.want {
				t.Errorf("normalizeLicense(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		minor, micro int
		want         string
	}{
		{0, 0, "experimental"},
		{0, 4, "experimental"},
		{1, 0, "testing"},
		{2, 1, "testing"},
		{2, 0, "stable"},
		{4, 2, "stable"},
	}
	for _, tt := range tests {
		m := Metadata{Minor: tt.minor, Micro: tt.micro}
		if got := m.Stability(); got != tt.want {
			t.Errorf("Stability(%d.%d) = %q, want %q", tt.minor, tt.micro, got, tt.want)
		}
	}
}

func TestCategories(t *testing.T) {
	got := Categories([]string{"PitchPlugin", "SpectralPlugin", "NoSuchPlugin"})
	want := []string{"Pitch Shifter", "Spectral"}
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
