package arena

import (
	"bytes"
	"testing"
)

func TestLevelsKeepSpawnsFree(t *testing.T) {
	for n := 1; n <= 10; n++ {
		m, err := Level(n, 42)
		if err != nil {
			t.Fatalf("level %d: %v", n, err)
		}
		for slot := 0; slot < SpawnSlots; slot++ {
			if !m.SpawnFree(slot, 12) {
				x, y, _ := m.SpawnPoint(slot)
				t.Errorf("level %d (%s): spawn %d at (%v, %v) blocked", n, m.Name, slot, x, y)
			}
		}
	}
}

func TestLevelOpenHasNoWalls(t *testing.T) {
	m, err := Level(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if m.FreeCount() != m.Width()*m.Height() {
		t.Fatalf("open level has %d walls", m.Width()*m.Height()-m.FreeCount())
	}
}

func TestLevelBoxHasBorder(t *testing.T) {
	m, err := Level(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if m.IsFree(0, 0) || m.IsFree(m.Width()-1, m.Height()/2) {
		t.Fatal("box level edge is free")
	}
}

func TestScatterIsDeterministic(t *testing.T) {
	a, _ := Level(7, 99)
	b, _ := Level(7, 99)
	c, _ := Level(7, 100)
	if !bytes.Equal(a.Heights, b.Heights) {
		t.Fatal("same seed built different arenas")
	}
	if bytes.Equal(a.Heights, c.Heights) {
		t.Fatal("different seeds built identical arenas")
	}
	if a.FreeCount() == a.Width()*a.Height() {
		t.Fatal("scatter level has no walls")
	}
}

func TestGetLevelConfigFallback(t *testing.T) {
	if got := GetLevelConfig(0).Name; got != "open" {
		t.Errorf("level 0 = %q", got)
	}
	if got := GetLevelConfig(9); got.Scatter != 12 || !got.Border {
		t.Errorf("level 9 = %+v", got)
	}
}
