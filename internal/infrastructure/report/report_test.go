package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
)

func record(id string, n, pass, wrong int) entity.Record {
	return entity.Record{ImageID: id, ScoreResult: entity.ScoreResult{Annotations: n, Pass: pass, Wrong: wrong}}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write(record("01_missing_hole_01", 3, 2, 1)))
	require.NoError(t, w.Write(record("04_mouse_bite_10", 0, 0, 4)))
	require.NoError(t, w.Flush())

	require.Equal(t, "01_missing_hole_01;3;2;1\n04_mouse_bite_10;0;0;4\n", buf.String())
}

func TestSummarize(t *testing.T) {
	s := Summarize([]entity.Record{
		record("a", 4, 4, 0),
		record("b", 4, 2, 3),
		record("c", 0, 0, 1),
	})

	require.Equal(t, 3, s.Images)
	require.Equal(t, 8, s.Annotations)
	require.Equal(t, 6, s.Pass)
	require.Equal(t, 4, s.Wrong)
	require.InDelta(t, 0.75, s.Recall, 1e-9)
	require.InDelta(t, 0.75, s.MeanRecall, 1e-9)
	require.InDelta(t, 0.353553, s.StdRecall, 1e-5)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	require.Equal(t, Summary{}, s)
	require.Contains(t, s.String(), "images=0")
}

func TestSummarize_SingleImage(t *testing.T) {
	s := Summarize([]entity.Record{record("a", 2, 1, 0)})
	require.InDelta(t, 0.5, s.MeanRecall, 1e-9)
	require.Equal(t, 0.0, s.StdRecall)
}
