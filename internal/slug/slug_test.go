package slug

import (
	"context"
	"testing"

	"NewsIngest/internal/domain"
)

type fakeRepo struct {
	slugs []string
	// matching overrides SlugsMatching output when set.
	matching   []string
	noMatching bool
}

func (f *fakeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, s := range f.slugs {
		if s == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) SourceURLExists(context.Context, string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) SlugsMatching(context.Context, string) ([]string, error) {
	if f.noMatching {
		return nil, nil
	}
	if f.matching != nil {
		return f.matching, nil
	}
	return f.slugs, nil
}

func (f *fakeRepo) InsertMany(context.Context, []domain.CandidateArticle) (domain.CommitResult, error) {
	return domain.CommitResult{}, nil
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"NVIDIA Announces RTX 5090!", "nvidia-announces-rtx-5090"},
		{"  Hello   World  ", "hello-world"},
		{"Tips & Tricks", "tips-and-tricks"},
		{"already-a-slug", "already-a-slug"},
		{"snake_case_title", "snake_case_title"},
		{"mixed_score & dash", "mixed_score-and-dash"},
		{"C++ vs. Go: the verdict", "c-vs-go-the-verdict"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	t.Parallel()

	titles := []string{
		"NVIDIA Announces RTX 5090!",
		"Tips & Tricks",
		"  Mixed   CASE  Title  ",
		"unicode — title",
	}

	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q -> %q", title, once, twice)
		}
	}
}

func TestUniqueNoCollision(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(&fakeRepo{})

	got, err := gen.Unique(context.Background(), "NVIDIA Announces RTX 5090!")
	if err != nil {
		t.Fatalf("Unique error: %v", err)
	}
	if got != "nvidia-announces-rtx-5090" {
		t.Fatalf("unexpected slug: %s", got)
	}
}

func TestUniqueSuffixes(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{slugs: []string{"nvidia-announces-rtx-5090"}}
	gen := NewGenerator(repo)
	ctx := context.Background()

	got, err := gen.Unique(ctx, "NVIDIA Announces RTX 5090!")
	if err != nil {
		t.Fatalf("Unique error: %v", err)
	}
	if got != "nvidia-announces-rtx-5090-1" {
		t.Fatalf("expected -1 suffix, got %s", got)
	}

	// Suffix is one greater than the highest persisted one, holes included.
	repo.slugs = append(repo.slugs, "nvidia-announces-rtx-5090-1", "nvidia-announces-rtx-5090-3")
	got, err = gen.Unique(ctx, "NVIDIA Announces RTX 5090!")
	if err != nil {
		t.Fatalf("Unique error: %v", err)
	}
	if got != "nvidia-announces-rtx-5090-4" {
		t.Fatalf("expected -4 suffix, got %s", got)
	}
}

func TestUniqueRaceFallback(t *testing.T) {
	t.Parallel()

	// Exact slug exists but the matching query comes back empty: claim -1.
	repo := &fakeRepo{slugs: []string{"hot-title"}, noMatching: true}
	gen := NewGenerator(repo)

	got, err := gen.Unique(context.Background(), "Hot Title")
	if err != nil {
		t.Fatalf("Unique error: %v", err)
	}
	if got != "hot-title-1" {
		t.Fatalf("expected hot-title-1, got %s", got)
	}
}
