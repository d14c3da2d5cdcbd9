package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/internal/label"
	dErrors "labelprint/pkg/domain-errors"
)

var renderTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestRenderProducesPDF(t *testing.T) {
	r := New()

	lbl, err := r.Render("ABC-123", renderTime)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(lbl.PDF, []byte("%PDF-")))
	assert.Equal(t, "Label ABC-123", lbl.Title)
	assert.Equal(t, label.Code("ABC-123"), lbl.Code)
	assert.False(t, lbl.Layout.Overflow)
	assert.LessOrEqual(t, lbl.Layout.TextWidth, float64(UsableWidth))
}

func TestRenderDeterministicLayout(t *testing.T) {
	r := New()

	a, err := r.Render("12345678", renderTime)
	require.NoError(t, err)
	b, err := r.Render("12345678", renderTime)
	require.NoError(t, err)

	assert.Equal(t, a.Layout, b.Layout)
}

func TestRenderOverflow(t *testing.T) {
	// Twenty W's are far wider than 240pt at 24pt Helvetica-Bold.
	wide := label.Code("WWWWWWWWWWWWWWWWWWWW")

	t.Run("degrade prints at floor size", func(t *testing.T) {
		lbl, err := New(WithOverflowPolicy(OverflowDegrade)).Render(wide, renderTime)
		require.NoError(t, err)
		assert.True(t, lbl.Layout.Overflow)
		assert.Equal(t, float64(MinFontSize), lbl.Layout.FontSize)
		assert.NotEmpty(t, lbl.PDF)
	})

	t.Run("reject returns validation error", func(t *testing.T) {
		lbl, err := New(WithOverflowPolicy(OverflowReject)).Render(wide, renderTime)
		require.Error(t, err)
		assert.Nil(t, lbl)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestParseOverflowPolicy(t *testing.T) {
	p, err := ParseOverflowPolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, OverflowReject, p)

	_, err = ParseOverflowPolicy("shrink")
	assert.Error(t, err)
}
