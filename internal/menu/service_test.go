package menu

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"biteaffair/internal/guests"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	docs  map[string][]byte
	fail  map[string]error
	loads map[string]int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		docs:  make(map[string][]byte),
		fail:  make(map[string]error),
		loads: make(map[string]int),
	}
}

func (m *MockRepository) Load(ctx context.Context, name string) ([]byte, error) {
	m.loads[name]++
	if err := m.fail[name]; err != nil {
		return nil, err
	}
	data, ok := m.docs[name]
	if !ok {
		return nil, ErrSourceNotFound
	}
	return data, nil
}

func TestEmbeddedCatalogIsValid(t *testing.T) {
	if err := ValidateCatalog(context.Background(), NewEmbeddedRepository()); err != nil {
		t.Fatalf("embedded catalog failed validation: %v", err)
	}
}

func TestService_ResolveEveryModeFromEmbeddedCatalog(t *testing.T) {
	svc := NewService(NewEmbeddedRepository())
	g := guests.Default()

	for _, mode := range Modes {
		items, err := svc.Resolve(context.Background(), Request{Mode: mode}, g)
		if err != nil {
			t.Fatalf("mode %s: unexpected error %v", mode, err)
		}
		if len(items) == 0 {
			t.Fatalf("mode %s resolved no items", mode)
		}
	}
}

func TestService_CocktailKeywordDiet(t *testing.T) {
	svc := NewService(NewEmbeddedRepository())

	items, err := svc.Items(context.Background(), ModeCocktail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	diets := map[string]Diet{}
	for _, item := range items {
		diets[item.ID] = item.Diet
	}
	if diets["ck_egg_curry"] != DietNonVeg {
		t.Errorf("expected egg curry to be non-veg, got %s", diets["ck_egg_curry"])
	}
	if diets["ck_dal_tadka"] != DietVeg {
		t.Errorf("expected dal tadka to be veg, got %s", diets["ck_dal_tadka"])
	}
}

func TestService_MissingSourceIsRetryableAndIsolated(t *testing.T) {
	repo := NewMockRepository()
	repo.docs[SourceCustomization] = []byte(`
veg:
  - {id: a, name: Paneer Tikka, category: starters, price: 8, portion: 2PCS}
`)
	svc := NewService(repo)

	_, err := svc.Resolve(context.Background(), Request{Mode: ModeJain}, guests.Default())

	var loadErr *MenuLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected MenuLoadError, got %v", err)
	}
	if loadErr.Mode != ModeJain || !loadErr.Retryable() {
		t.Errorf("unexpected load error %+v", loadErr)
	}
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("expected wrapped ErrSourceNotFound")
	}

	if _, err := svc.Resolve(context.Background(), Request{Mode: ModeCustomized}, guests.Default()); err != nil {
		t.Fatalf("other modes must keep working: %v", err)
	}

	// a retry reaches the repository again and succeeds once data appears
	repo.docs[SourceJain] = []byte(`
items:
  - {id: j, name: Jain Dal, category: main_course, price: 80, quantity: 1KG, serves: 5}
`)
	if _, err := svc.Resolve(context.Background(), Request{Mode: ModeJain}, guests.Default()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if repo.loads[SourceJain] != 2 {
		t.Errorf("expected 2 loads, got %d", repo.loads[SourceJain])
	}
}

func TestService_MalformedSource(t *testing.T) {
	cases := map[string]string{
		"bad yaml":      "items: [",
		"empty":         "items: []",
		"missing id":    "items:\n  - {name: Nameless, price: 3}",
		"negative":      "items:\n  - {id: x, name: X, price: -1}",
		"duplicate ids": "items:\n  - {id: x, name: X}\n  - {id: x, name: Y}",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := NewMockRepository()
			repo.docs[SourceJain] = []byte(doc)

			_, err := NewService(repo).Items(context.Background(), ModeJain)
			var loadErr *MenuLoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected MenuLoadError, got %v", err)
			}
		})
	}
}

func TestService_CachesSuccessfulLoads(t *testing.T) {
	repo := NewMockRepository()
	repo.docs[SourceJain] = []byte("items:\n  - {id: x, name: X, price: 3}")
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Items(context.Background(), ModeJain); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if repo.loads[SourceJain] != 1 {
		t.Errorf("expected a single load, got %d", repo.loads[SourceJain])
	}

	svc.Refresh()
	if _, err := svc.Items(context.Background(), ModeJain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.loads[SourceJain] != 2 {
		t.Errorf("expected reload after refresh, got %d", repo.loads[SourceJain])
	}
}

func TestService_ResolveOneAndAddons(t *testing.T) {
	svc := NewService(NewEmbeddedRepository())
	g := guests.Count{Veg: 10, NonVeg: 5, Jain: 5}

	r, err := svc.ResolveOne(context.Background(), Request{Mode: ModeCustomized}, "cus_butter_naan", g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Serves != 20 {
		t.Errorf("expected naan to serve the total 20, got %d", r.Serves)
	}

	if _, err := svc.ResolveOne(context.Background(), Request{Mode: ModeCustomized}, "nope", g); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	addon, err := svc.Addon(context.Background(), "water")
	if err != nil || addon.Price != 240 {
		t.Errorf("unexpected add-on %+v, %v", addon, err)
	}
}

func TestBucketRepository(t *testing.T) {
	objects := fakeObjects{"catalog/v1/jain.yaml": []byte("items: []")}
	repo := NewBucketRepository(objects, "catalog/v1")

	data, err := repo.Load(context.Background(), SourceJain)
	if err != nil || string(data) != "items: []" {
		t.Fatalf("unexpected load %q, %v", data, err)
	}
}

type fakeObjects map[string][]byte

func (f fakeObjects) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := f[key]
	if !ok {
		return nil, ErrSourceNotFound
	}
	return data, nil
}

func TestFSRepository_MissingFile(t *testing.T) {
	repo := NewFSRepository(fstest.MapFS{}, ".")
	if _, err := repo.Load(context.Background(), SourceJain); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestValidateFileExtension(t *testing.T) {
	if err := ValidateFileExtension("jain.yaml"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := ValidateFileExtension("menu.pdf"); err == nil {
		t.Errorf("expected pdf to be rejected")
	}
	if err := ValidateFileExtension("README"); err == nil {
		t.Errorf("expected missing extension to be rejected")
	}
}
