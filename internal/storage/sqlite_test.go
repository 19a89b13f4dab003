package storage

import (
	"os"
	"path/filepath"
	"testing"

	"sandfall/internal/sandbox"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "scenes.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSceneRoundTrip(t *testing.T) {
	store := openTestStore(t)

	sim := sandbox.NewSimulation(sandbox.NewGrid(2, 2, 4, 4), sandbox.DefaultConfig())
	sim.Place(0, 7, sandbox.Stone)
	sim.Place(3, 2, sandbox.Water)
	sim.Place(7, 0, sandbox.Sand)

	id, err := store.SaveScene(Capture("pond", 42, sim.Grid()))
	if err != nil {
		t.Fatalf("SaveScene() failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("unexpected id %d", id)
	}

	scene, err := store.LoadScene("pond")
	if err != nil {
		t.Fatalf("LoadScene() failed: %v", err)
	}
	if scene == nil {
		t.Fatal("scene not found")
	}
	if scene.Width != 8 || scene.Height != 8 || scene.Seed != 42 || len(scene.Cells) != 3 {
		t.Fatalf("unexpected scene %+v", scene)
	}

	other := sandbox.NewSimulation(sandbox.NewGrid(2, 2, 4, 4), sandbox.DefaultConfig())
	other.Place(5, 5, sandbox.Acid)
	placed, skipped := scene.Apply(other)
	if placed != 3 || skipped != 0 {
		t.Fatalf("Apply placed %d skipped %d", placed, skipped)
	}
	g := other.Grid()
	if g.Get(5, 5) != nil {
		t.Fatal("Apply should clear the grid first")
	}
	if g.Get(0, 7).Kind != sandbox.Stone || g.Get(3, 2).Kind != sandbox.Water || g.Get(7, 0).Kind != sandbox.Sand {
		t.Fatal("cells not restored")
	}
}

func TestSaveSceneReplacesByName(t *testing.T) {
	store := openTestStore(t)

	first := Scene{Name: "lab", Width: 4, Height: 4, Cells: []Cell{{0, 0, "sand"}, {1, 0, "sand"}}}
	second := Scene{Name: "lab", Width: 4, Height: 4, Cells: []Cell{{2, 2, "water"}}}
	if _, err := store.SaveScene(first); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScene(second); err != nil {
		t.Fatal(err)
	}

	scenes, err := store.ListScenes()
	if err != nil {
		t.Fatalf("ListScenes() failed: %v", err)
	}
	if len(scenes) != 1 || scenes[0].Cells != 1 {
		t.Fatalf("expected one scene with one cell, got %+v", scenes)
	}

	if _, err := store.SaveScene(Scene{}); err == nil {
		t.Fatal("expected error for unnamed scene")
	}
}

func TestLoadMissingAndDelete(t *testing.T) {
	store := openTestStore(t)

	scene, err := store.LoadScene("nothing")
	if err != nil || scene != nil {
		t.Fatalf("missing scene = %v, %v", scene, err)
	}

	if _, err := store.SaveScene(Scene{Name: "gone", Width: 1, Height: 1, Cells: []Cell{{0, 0, "stone"}}}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteScene("gone"); err != nil {
		t.Fatalf("DeleteScene() failed: %v", err)
	}
	if scene, _ := store.LoadScene("gone"); scene != nil {
		t.Fatal("deleted scene still loads")
	}
	if err := store.DeleteScene("gone"); err != nil {
		t.Fatalf("deleting twice should be fine: %v", err)
	}
}

func TestApplySkipsInvalidCells(t *testing.T) {
	sim := sandbox.NewSimulation(sandbox.NewGrid(1, 1, 4, 4), sandbox.DefaultConfig())
	scene := Scene{Cells: []Cell{{1, 1, "sand"}, {9, 9, "sand"}, {2, 2, "plasma"}, {3, 3, "none"}}}
	placed, skipped := scene.Apply(sim)
	if placed != 1 || skipped != 3 {
		t.Fatalf("placed %d skipped %d, want 1 and 3", placed, skipped)
	}
}
