package catalog

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func slugsOf(views []models.ServiceView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Slug
	}
	return out
}

func findBySlug(t *testing.T, views []models.ServiceView, slug string) models.ServiceView {
	t.Helper()
	for _, v := range views {
		if v.Slug == slug {
			return v
		}
	}
	t.Fatalf("no view with slug %q in %v", slug, slugsOf(views))
	return models.ServiceView{}
}

func TestMergeLinksDetailToPostBySlug(t *testing.T) {
	postID := uuid.New()
	details := []models.ServiceDetail{
		{Key: "web-design", Title: "Web Design", Description: "We build sites", Bullets: []string{"Fast", "Responsive"}, Icon: "monitor"},
	}
	posts := []models.ServicePost{
		{ID: postID, Slug: "web-design", Title: "Web Design & Development", Excerpt: "From the post", Thumbnail: "thumb.webp", StatusID: models.ServiceStatusPublished},
	}

	out := Merge(details, posts)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged view, got %d", len(out))
	}

	v := out[0]
	if v.PostID == nil || *v.PostID != postID {
		t.Errorf("postID: got %v, want %s", v.PostID, postID)
	}
	// Post title overrides the detail's.
	if v.Title != "Web Design & Development" {
		t.Errorf("title: got %q", v.Title)
	}
	// Detail-only fields survive as defaults.
	if v.Description != "We build sites" {
		t.Errorf("description: got %q", v.Description)
	}
	if len(v.Bullets) != 2 {
		t.Errorf("bullets: got %v", v.Bullets)
	}
	if v.Excerpt != "From the post" {
		t.Errorf("excerpt: got %q", v.Excerpt)
	}
	if v.StatusID != models.ServiceStatusPublished {
		t.Errorf("status: got %d", v.StatusID)
	}
}

func TestMergeSlugMatchIsCaseInsensitive(t *testing.T) {
	postID := uuid.New()
	out := Merge(
		[]models.ServiceDetail{{Key: "SEO-Audit", Title: "SEO Audit"}},
		[]models.ServicePost{{ID: postID, Slug: "seo-audit", Title: "SEO Audit"}},
	)
	if len(out) != 1 {
		t.Fatalf("expected 1 view, got %d", len(out))
	}
	if out[0].PostID == nil {
		t.Error("expected detail linked to post despite slug casing")
	}
}

func TestMergeSynthesizesOrphanPost(t *testing.T) {
	posts := []models.ServicePost{
		{ID: uuid.New(), Slug: "branding", Title: "Branding", Excerpt: "Logos and identity"},
	}

	out := Merge(nil, posts)
	if len(out) != 1 {
		t.Fatalf("expected 1 view, got %d", len(out))
	}

	v := out[0]
	if v.Icon != defaultIcon {
		t.Errorf("icon: got %q, want default %q", v.Icon, defaultIcon)
	}
	if v.Bullets == nil || len(v.Bullets) != 0 {
		t.Errorf("bullets: got %v, want empty", v.Bullets)
	}
	if v.PostID == nil {
		t.Error("expected postID on synthesized view")
	}
}

// §8 property 1: repeated runs on unchanged inputs yield identical output,
// including for records that lack both slug and title.
func TestMergeIdempotent(t *testing.T) {
	details := []models.ServiceDetail{
		{Key: "web-design", Title: "Web Design"},
		{Key: "", Title: ""}, // orphan with no usable key
		{Key: "", Title: "Hosting"},
	}
	posts := []models.ServicePost{
		{ID: uuid.New(), Slug: "web-design", Title: "Web Design"},
		{ID: uuid.New(), Slug: "consulting", Title: "Consulting"},
	}

	first := Merge(details, posts)
	second := Merge(details, posts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("merge not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// §8 property 2: no input record is silently dropped, and each distinct
// canonical slug appears exactly once.
func TestMergeNoSilentDrop(t *testing.T) {
	details := []models.ServiceDetail{
		{Key: "a", Title: "A"},
		{Key: "b", Title: "B"},
	}
	posts := []models.ServicePost{
		{ID: uuid.New(), Slug: "b", Title: "B post"},
		{ID: uuid.New(), Slug: "c", Title: "C"},
	}

	out := Merge(details, posts)

	seen := map[string]int{}
	for _, v := range out {
		seen[v.Slug]++
	}
	for _, slug := range []string{"a", "b", "c"} {
		if seen[slug] != 1 {
			t.Errorf("slug %q appears %d times, want exactly 1", slug, seen[slug])
		}
	}
	if len(out) != 3 {
		t.Errorf("expected 3 views, got %d", len(out))
	}
}

// §8 property 3: field merge is left-biased — a non-empty value is never
// overwritten by an empty one, regardless of which record carries it.
func TestMergeLeftBiasedFields(t *testing.T) {
	withThumb := models.ServicePost{ID: uuid.New(), Slug: "dup", Title: "Dup", Thumbnail: "keep.webp"}
	withoutThumb := models.ServiceDetail{Key: "dup", Title: "Dup", Image: "detail.png"}

	out := Merge([]models.ServiceDetail{withoutThumb}, []models.ServicePost{withThumb})
	if len(out) != 1 {
		t.Fatalf("expected 1 view, got %d", len(out))
	}
	if out[0].Thumbnail != "keep.webp" {
		t.Errorf("thumbnail: got %q, want %q", out[0].Thumbnail, "keep.webp")
	}
	if out[0].Image != "detail.png" {
		t.Errorf("image: got %q, want %q", out[0].Image, "detail.png")
	}
}

// §8 property 4: when exactly one of two same-slug records carries a
// postID, the merged record keeps it.
func TestMergePostIDPreferred(t *testing.T) {
	postID := uuid.New()
	// Two details with the same title but no slug collapse via the
	// normalized-title key; the post claims one of them by slug.
	details := []models.ServiceDetail{
		{Key: "video-production", Title: "Video Production"},
		{Key: "", Title: "Video Production!"},
	}
	posts := []models.ServicePost{
		{ID: postID, Slug: "video-production", Title: "Video Production"},
	}

	out := Merge(details, posts)

	linked := 0
	for _, v := range out {
		if v.PostID != nil && *v.PostID == postID {
			linked++
		}
	}
	if linked != 1 {
		t.Errorf("expected exactly one view linked to post, got %d", linked)
	}
}

// A detail absorbs only one post; a second post sharing the slug still
// folds its fields into the same entry instead of being dropped.
func TestMergeSecondPostWithSameSlugContributes(t *testing.T) {
	firstID := uuid.New()
	details := []models.ServiceDetail{
		{Key: "copywriting", Title: "Copywriting", Description: "Words that sell"},
	}
	posts := []models.ServicePost{
		{ID: firstID, Slug: "copywriting", Title: "Copywriting"},
		{ID: uuid.New(), Slug: "copywriting", Title: "Copywriting", Excerpt: "From the duplicate", Thumbnail: "dup.webp"},
	}

	out := Merge(details, posts)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged view, got %d: %v", len(out), slugsOf(out))
	}

	v := out[0]
	if v.PostID == nil || *v.PostID != firstID {
		t.Errorf("postID: got %v, want first post %s", v.PostID, firstID)
	}
	if v.Description != "Words that sell" {
		t.Errorf("description: got %q", v.Description)
	}
	// Fields only the duplicate post carries must survive.
	if v.Excerpt != "From the duplicate" {
		t.Errorf("excerpt: got %q, want duplicate's", v.Excerpt)
	}
	if v.Thumbnail != "dup.webp" {
		t.Errorf("thumbnail: got %q, want duplicate's", v.Thumbnail)
	}
}

// Title normalization catches duplicates that lack a slug entirely.
func TestMergeTitleFallbackDedupe(t *testing.T) {
	details := []models.ServiceDetail{
		{Key: "", Title: "Print Design"},
		{Key: "", Title: "print-design", Description: "Flyers and posters"},
	}

	out := Merge(details, nil)
	if len(out) != 1 {
		t.Fatalf("expected title-normalized duplicates to merge, got %d views", len(out))
	}
	if out[0].Description != "Flyers and posters" {
		t.Errorf("description lost in merge: %q", out[0].Description)
	}
}

// Records with neither slug nor title never merge with each other.
func TestMergeKeylessRecordsStayDistinct(t *testing.T) {
	details := []models.ServiceDetail{
		{Description: "first nameless"},
		{Description: "second nameless"},
	}

	out := Merge(details, nil)
	if len(out) != 2 {
		t.Errorf("expected 2 distinct views for keyless records, got %d", len(out))
	}
}

// §8 property 5: sort by createdAt descending, undated entries last.
func TestMergeSortNewestFirstUndatedLast(t *testing.T) {
	details := []models.ServiceDetail{
		{Key: "jan", Title: "January", CreatedAt: date("2024-01-01")},
		{Key: "mar", Title: "March", CreatedAt: date("2024-03-01")},
		{Key: "undated", Title: "Undated"},
	}

	out := Merge(details, nil)

	want := []string{"mar", "jan", "undated"}
	got := slugsOf(out)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order: got %v, want %v", got, want)
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if out := Merge(nil, nil); len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}

func TestMergePostDateWinsOverDetailDate(t *testing.T) {
	details := []models.ServiceDetail{
		{Key: "svc", Title: "Svc", CreatedAt: date("2023-01-01")},
	}
	posts := []models.ServicePost{
		{ID: uuid.New(), Slug: "svc", Title: "Svc", CreatedAt: date("2024-06-01")},
	}

	out := Merge(details, posts)
	v := findBySlug(t, out, "svc")
	if !v.CreatedAt.Equal(date("2024-06-01")) {
		t.Errorf("createdAt: got %s, want post date", v.CreatedAt)
	}
}
