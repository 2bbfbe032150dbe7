package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wayshell/internal/model"
)

func testApps() []App {
	return []App{
		{
			ApplicationEntry: model.ApplicationEntry{
				ID: "firefox.desktop", Name: "Firefox", Exec: "firefox %u",
				Comment: "Browse the web", Path: "/usr/share/applications/firefox.desktop",
			},
			Modified: time.Now().Add(-48 * time.Hour),
		},
		{
			ApplicationEntry: model.ApplicationEntry{
				ID: "org.gnome.Files.desktop", Name: "Files", Exec: "nautilus",
				Path: "/usr/share/applications/org.gnome.Files.desktop",
			},
		},
	}
}

func testRanked() []model.RankedCandidate {
	apps := testApps()
	return []model.RankedCandidate{
		{Entry: apps[0].ApplicationEntry, Score: 0.5},
		{Entry: apps[1].ApplicationEntry, Score: 1.0 / 3.0},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    FormatType
		wantErr bool
	}{
		{"", FormatPlain, false},
		{"plain", FormatPlain, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", FormatTable, false},
		{"dmenu", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFormatter_Types(t *testing.T) {
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, FormatterOptions{}))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, FormatterOptions{}))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, FormatterOptions{}))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable, FormatterOptions{}))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("bogus", FormatterOptions{}))
}

func TestNewApps(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.desktop")
	require.NoError(t, os.WriteFile(p, []byte("[Desktop Entry]\n"), 0644))

	apps := NewApps(model.Index{
		{ID: "a.desktop", Name: "A", Path: p},
		{ID: "b.desktop", Name: "B", Path: filepath.Join(dir, "gone.desktop")},
	})

	require.Len(t, apps, 2)
	assert.False(t, apps[0].Modified.IsZero())
	assert.True(t, apps[1].Modified.IsZero())
	assert.Equal(t, "B", apps[1].Name)
}

func TestPlainFormatter_Apps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(FormatterOptions{ShowIndex: true}).Apps(&buf, testApps()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[1] Firefox  (firefox.desktop)", lines[0])
	assert.Equal(t, "[2] Files  (org.gnome.Files.desktop)", lines[1])
}

func TestPlainFormatter_AppsWithPath(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(FormatterOptions{ShowPath: true}).Apps(&buf, testApps()))

	out := buf.String()
	assert.Contains(t, out, "/usr/share/applications/firefox.desktop, modified 2 days ago")
	assert.Contains(t, out, "modified unknown")
}

func TestPlainFormatter_Template(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(FormatterOptions{Template: `{{.Index}}:{{.App.Name | printf "%s"}}:{{truncate .App.Exec 6}}`})
	require.NoError(t, f.Apps(&buf, testApps()))
	assert.Equal(t, "1:Firefox:fir...\n2:Files:nau...\n", buf.String())

	buf.Reset()
	f = NewPlainFormatter(FormatterOptions{Template: `{{score .Score}} {{.App.ID}}`})
	require.NoError(t, f.Ranked(&buf, "fi", testRanked()))
	assert.Equal(t, "0.500 firefox.desktop\n0.333 org.gnome.Files.desktop\n", buf.String())
}

func TestPlainFormatter_BadTemplateFallsBack(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(FormatterOptions{Template: "{{.Broken"})
	require.NoError(t, f.Apps(&buf, testApps()[:1]))
	assert.Equal(t, "Firefox  (firefox.desktop)\n", buf.String())
}

func TestPlainFormatter_Ranked(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(FormatterOptions{}).Ranked(&buf, "fire", testRanked()))
	assert.Equal(t, "0.500  Firefox\n0.333  Files\n", buf.String())

	buf.Reset()
	require.NoError(t, NewPlainFormatter(FormatterOptions{}).Ranked(&buf, "zzz", nil))
	assert.Empty(t, buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	require.NoError(t, f.Apps(&buf, testApps()))

	var apps []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &apps))
	require.Len(t, apps, 2)
	assert.Equal(t, "firefox.desktop", apps[0]["id"])
	assert.Equal(t, "firefox %u", apps[0]["exec"])
	assert.Contains(t, apps[0], "modified")

	buf.Reset()
	require.NoError(t, f.Ranked(&buf, "fire", nil))
	assert.JSONEq(t, `{"query":"fire","results":[]}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}
	require.NoError(t, f.Ranked(&buf, "fire", testRanked()))

	var doc struct {
		Query   string `yaml:"query"`
		Results []struct {
			Entry struct {
				Name string `yaml:"name"`
			} `yaml:"entry"`
			Score float64 `yaml:"score"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "fire", doc.Query)
	require.Len(t, doc.Results, 2)
	assert.Equal(t, "Firefox", doc.Results[0].Entry.Name)
	assert.InDelta(t, 0.5, doc.Results[0].Score, 1e-9)

	buf.Reset()
	require.NoError(t, f.Apps(&buf, testApps()))
	out := buf.String()
	assert.Contains(t, out, "name: Firefox")
	assert.NotContains(t, out, "applicationentry", "entry fields are inlined")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(FormatterOptions{}).Apps(&buf, testApps()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^ID\s+NAME\s+EXEC\s+MODIFIED`, lines[0])
	assert.Contains(t, lines[1], "Firefox")
	assert.Contains(t, lines[1], "2 days ago")
	assert.Contains(t, lines[2], "unknown")

	buf.Reset()
	require.NoError(t, NewTableFormatter(FormatterOptions{}).Ranked(&buf, "fire", testRanked()))
	lines = strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^#\s+SCORE\s+NAME\s+ID`, lines[0])
	assert.Regexp(t, `^1\s+0\.500\s+Firefox\s+firefox\.desktop`, lines[1])
}
