package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/pkg/cache"
)

const jsonDoc = `
["document", {"title": "Demo"},
  ["page", {},
    ["rect", {"x": 10, "y": 20, "width": 100, "height": 50, "fill": "red"}],
    ["text", {"x": 100, "y": 100, "font": "Arial", "size": 12}, "Hello"]
  ]
]`

const tomlDoc = `
[document]
title = "Demo"

[[page]]

[[page.element]]
tag = "circle"
cx = 100
cy = 100
r = 50
fill = "#0000ff"
`

func TestExecutePDF(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Description: []byte(jsonDoc),
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.Stats.PageCount)
	require.Equal(t, 2, result.Stats.ElementCount)
	require.NotEmpty(t, result.DocHash)
	require.False(t, result.CacheInfo.RenderHit)

	pdf := string(result.Artifacts[FormatPDF])
	require.True(t, strings.HasPrefix(pdf, "%PDF-1.4\n"))
	require.True(t, strings.HasSuffix(pdf, "%%EOF"))
	require.Contains(t, pdf, "/Title (Demo)")
}

func TestExecuteAllFormats(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Description: []byte(jsonDoc),
		Formats:     []string{FormatPDF, FormatStream, FormatJSON},
	})
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 3)

	stream := string(result.Artifacts[FormatStream])
	require.Contains(t, stream, "% page 1")
	require.Contains(t, stream, "re\nf")

	// The JSON artifact is a loadable normalized description.
	again, err := runner.Execute(context.Background(), Options{
		Description: result.Artifacts[FormatJSON],
	})
	require.NoError(t, err)
	require.Equal(t, result.DocHash, again.DocHash)
}

func TestExecuteTOML(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	// Format detection sniffs the payload; no source format given.
	result, err := runner.Execute(context.Background(), Options{
		Description: []byte(tomlDoc),
	})
	require.NoError(t, err)
	require.Equal(t, "Demo", result.Document.Meta.Title)
	require.Equal(t, 1, result.Stats.ElementCount)
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Description: []byte(jsonDoc)}

	first, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	require.False(t, first.CacheInfo.RenderHit)

	second, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, second.CacheInfo.RenderHit)
	require.Equal(t, first.Artifacts[FormatPDF], second.Artifacts[FormatPDF])

	// Refresh bypasses the cache but still produces identical bytes.
	third, err := runner.Execute(context.Background(), Options{
		Description: []byte(jsonDoc),
		Refresh:     true,
	})
	require.NoError(t, err)
	require.False(t, third.CacheInfo.RenderHit)
	require.Equal(t, first.Artifacts[FormatPDF], third.Artifacts[FormatPDF])
}

func TestExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()
	ctx := context.Background()

	_, err := runner.Execute(ctx, Options{})
	require.Error(t, err)

	_, err = runner.Execute(ctx, Options{
		Description: []byte(jsonDoc),
		Input:       "also.json",
	})
	require.Error(t, err)

	_, err = runner.Execute(ctx, Options{
		Description: []byte(jsonDoc),
		Formats:     []string{"docx"},
	})
	require.Error(t, err)
}

func TestExecuteBadDescription(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Description:  []byte(`["rect", {}]`),
		SourceFormat: SourceJSON,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "load:")
}

func TestSourceFormatDetection(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		data string
		want string
	}{
		{"explicit", Options{SourceFormat: SourceTOML}, `["document"]`, SourceTOML},
		{"json extension", Options{Input: "doc.json"}, "", SourceJSON},
		{"toml extension", Options{Input: "doc.TOML"}, "", SourceTOML},
		{"json payload", Options{}, `  ["document", {}]`, SourceJSON},
		{"toml table payload", Options{}, "[document]\ntitle = \"x\"", SourceTOML},
		{"toml array of tables", Options{}, "[[page]]", SourceTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sourceFormat(tt.opts, []byte(tt.data)))
		})
	}
}
