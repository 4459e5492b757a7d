package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func buildTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := Build(&Input{
		N: 4,
		Edges: []InputEdge{
			{U: 0, V: 1, W: 2.5},
			{U: 0, V: 3, W: 1},
			{U: 1, V: 2, W: 1.25},
			{U: 3, V: 2, W: 5},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBinaryRoundTrip(t *testing.T) {
	original := buildTestGraph(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.graph.bin")

	if err := WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	loaded, err := ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if loaded.NumNodes != original.NumNodes || loaded.NumEdges != original.NumEdges {
		t.Fatalf("size mismatch: %d/%d vs %d/%d",
			loaded.NumNodes, loaded.NumEdges, original.NumNodes, original.NumEdges)
	}
	if loaded.Directed != original.Directed {
		t.Error("Directed flag lost")
	}
	for i := range original.FirstOut {
		if loaded.FirstOut[i] != original.FirstOut[i] {
			t.Fatalf("FirstOut[%d]: got %d, want %d", i, loaded.FirstOut[i], original.FirstOut[i])
		}
	}
	for i := range original.Head {
		if loaded.Head[i] != original.Head[i] || loaded.Weight[i] != original.Weight[i] {
			t.Fatalf("edge %d: got (%d, %g), want (%d, %g)",
				i, loaded.Head[i], loaded.Weight[i], original.Head[i], original.Weight[i])
		}
	}
	if loaded.Geographic() {
		t.Error("coordinates invented from nowhere")
	}
}

func TestBinaryRoundTripWithCoordinates(t *testing.T) {
	original := buildTestGraph(t)
	original.NodeLat = []float64{1.30, 1.31, 1.32, 1.33}
	original.NodeLon = []float64{103.80, 103.81, 103.82, 103.83}

	path := filepath.Join(t.TempDir(), "geo.graph.bin")
	if err := WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	loaded, err := ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if !loaded.Geographic() {
		t.Fatal("coordinates lost")
	}
	for i := range original.NodeLat {
		if loaded.NodeLat[i] != original.NodeLat[i] || loaded.NodeLon[i] != original.NodeLon[i] {
			t.Fatalf("coords[%d] mismatch", i)
		}
	}
}

func TestBinaryDetectsCorruption(t *testing.T) {
	original := buildTestGraph(t)
	path := filepath.Join(t.TempDir(), "corrupt.graph.bin")
	if err := WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Flip a byte in the middle of the payload.
	data[len(data)/2] ^= 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ReadBinary(path); err == nil {
		t.Fatal("ReadBinary accepted corrupted file")
	}
}

func TestBinaryRejectsWrongMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.bin")
	if err := os.WriteFile(path, []byte("NOTAGRAPHFILE_________________"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadBinary(path); err == nil {
		t.Fatal("ReadBinary accepted bogus file")
	}
}
