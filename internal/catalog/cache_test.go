package catalog

import (
	"errors"
	"testing"
	"time"

	"zproveart-backend/internal/models"
)

func TestFamilyCacheServesFreshData(t *testing.T) {
	clock := testNow
	calls := 0

	c := NewFamilyCache(10*time.Minute, func() ([]models.FamilyRow, error) {
		calls++
		return []models.FamilyRow{{CodFam: "10", DesFam: sptr("MUEBLE")}}, nil
	})
	c.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		got, err := c.Get()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].CodFam != "10" {
			t.Fatalf("familias = %v", got)
		}
	}
	if calls != 1 {
		t.Errorf("la caché fresca no debe recargar: %d cargas", calls)
	}

	// Pasado el TTL la siguiente lectura recarga
	clock = clock.Add(10*time.Minute + time.Second)
	if _, err := c.Get(); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("tras caducar debería haber 2 cargas, hay %d", calls)
	}
}

func TestFamilyCacheDoesNotCacheErrors(t *testing.T) {
	calls := 0
	fail := true

	c := NewFamilyCache(10*time.Minute, func() ([]models.FamilyRow, error) {
		calls++
		if fail {
			return nil, errors.New("base de datos caída")
		}
		return []models.FamilyRow{{CodFam: "10"}}, nil
	})
	c.now = func() time.Time { return testNow }

	if _, err := c.Get(); err == nil {
		t.Fatal("se esperaba error")
	}

	// El fallo no deja residuo: la siguiente lectura reintenta y sirve datos
	fail = false
	got, err := c.Get()
	if err != nil || len(got) != 1 {
		t.Fatalf("got = %v, err = %v", got, err)
	}
	if calls != 2 {
		t.Errorf("cargas = %d", calls)
	}
}

func TestSubfamilyCacheKeysPerFamily(t *testing.T) {
	calls := map[string]int{}

	c := NewSubfamilyCache(10*time.Minute, func(codFam string) ([]models.SubfamilyRow, error) {
		calls[codFam]++
		return []models.SubfamilyRow{{CodSubfam: codFam + "01"}}, nil
	})
	c.now = func() time.Time { return testNow }

	for _, fam := range []string{"10", "20", "10", "20", "10"} {
		got, err := c.Get(fam)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].CodSubfam != fam+"01" {
			t.Fatalf("subfamilias de %s = %v", fam, got)
		}
	}

	// Cada familia se carga una vez; las repeticiones salen de caché
	if calls["10"] != 1 || calls["20"] != 1 {
		t.Errorf("cargas por familia = %v", calls)
	}
}

func TestSubfamilyCacheExpiresPerEntry(t *testing.T) {
	clock := testNow
	calls := 0

	c := NewSubfamilyCache(10*time.Minute, func(codFam string) ([]models.SubfamilyRow, error) {
		calls++
		return []models.SubfamilyRow{{CodSubfam: "0001"}}, nil
	})
	c.now = func() time.Time { return clock }

	if _, err := c.Get("10"); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(11 * time.Minute)
	if _, err := c.Get("10"); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("la entrada caducada debería recargarse: %d cargas", calls)
	}
}

func TestSubfamilyCacheEmptyCodeSkipsFetch(t *testing.T) {
	calls := 0

	c := NewSubfamilyCache(10*time.Minute, func(string) ([]models.SubfamilyRow, error) {
		calls++
		return nil, nil
	})

	for _, code := range []string{"", "   "} {
		got, err := c.Get(code)
		if err != nil || got != nil {
			t.Errorf("Get(%q) = %v, %v", code, got, err)
		}
	}
	if calls != 0 {
		t.Errorf("el código vacío no debe tocar la base de datos: %d cargas", calls)
	}
}
