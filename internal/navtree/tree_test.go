package navtree

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sandeshar/contentsolution-sub000/internal/models"
)

func item(label string, order int, parent *uuid.UUID) models.NavbarItem {
	return models.NavbarItem{
		ID:        uuid.New(),
		Label:     label,
		Href:      "/" + label,
		SortOrder: order,
		ParentID:  parent,
		IsActive:  true,
	}
}

func labelsOf(items []models.NavbarItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestTreeRootsAndChildren(t *testing.T) {
	root := item("home", 0, nil)
	services := item("services", 1, nil)
	child := item("web", 0, &services.ID)
	grandchild := item("frontend", 0, &child.ID)

	tree := New([]models.NavbarItem{grandchild, child, services, root})

	roots := tree.Roots()
	if got := labelsOf(roots); len(got) != 2 || got[0] != "home" || got[1] != "services" {
		t.Errorf("roots: got %v", got)
	}

	kids := tree.Children(services.ID)
	if len(kids) != 1 || kids[0].Label != "web" {
		t.Errorf("children: got %v", labelsOf(kids))
	}

	if !tree.HasChildren(child.ID) {
		t.Error("expected child to have a grandchild")
	}
	if tree.HasChildren(grandchild.ID) {
		t.Error("leaf should have no children")
	}
}

func TestTreeOrphanRowsBecomeRoots(t *testing.T) {
	missing := uuid.New()
	orphan := item("stray", 0, &missing)

	tree := New([]models.NavbarItem{orphan})
	if got := labelsOf(tree.Roots()); len(got) != 1 || got[0] != "stray" {
		t.Errorf("orphan not promoted to root: %v", got)
	}
}

func TestTreeAssembleNestsAllLevels(t *testing.T) {
	root := item("services", 0, nil)
	cat := item("design", 0, &root.ID)
	sub := item("logos", 0, &cat.ID)

	tree := New([]models.NavbarItem{root, cat, sub})
	assembled := tree.Assemble()

	if len(assembled) != 1 {
		t.Fatalf("roots: got %d", len(assembled))
	}
	if len(assembled[0].Children) != 1 {
		t.Fatalf("children: got %d", len(assembled[0].Children))
	}
	if len(assembled[0].Children[0].Children) != 1 {
		t.Fatalf("grandchildren: got %d", len(assembled[0].Children[0].Children))
	}
	if assembled[0].Children[0].Children[0].Label != "logos" {
		t.Errorf("grandchild: got %q", assembled[0].Children[0].Children[0].Label)
	}
}

// §8 property 6: moving the first item up is a no-op; moving the last
// item up swaps it with its neighbor and renumbers the whole group.
func TestReorderBoundaries(t *testing.T) {
	a := item("A", 0, nil)
	b := item("B", 1, nil)
	c := item("C", 2, nil)
	group := []models.NavbarItem{a, b, c}

	// A up: boundary no-op.
	ordered, changed := Reorder(group, a.ID, MoveUp)
	if changed {
		t.Error("moving first item up should not change anything")
	}
	if got := labelsOf(ordered); got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("order after no-op: %v", got)
	}

	// C up: swap with B.
	ordered, changed = Reorder(group, c.ID, MoveUp)
	if !changed {
		t.Fatal("expected a swap")
	}
	want := []string{"A", "C", "B"}
	for i, label := range want {
		if ordered[i].Label != label {
			t.Errorf("position %d: got %q, want %q", i, ordered[i].Label, label)
		}
		if ordered[i].SortOrder != i {
			t.Errorf("position %d: sort_order %d, want contiguous %d", i, ordered[i].SortOrder, i)
		}
	}

	// C down: boundary no-op.
	_, changed = Reorder(group, c.ID, MoveDown)
	if changed {
		t.Error("moving last item down should not change anything")
	}
}

func TestReorderRenumbersGappedOrders(t *testing.T) {
	a := item("A", 3, nil)
	b := item("B", 7, nil)
	c := item("C", 12, nil)

	ordered, changed := Reorder([]models.NavbarItem{a, b, c}, b.ID, MoveDown)
	if !changed {
		t.Fatal("expected a swap")
	}
	for i, it := range ordered {
		if it.SortOrder != i {
			t.Errorf("sort_order not contiguous: %q has %d at position %d", it.Label, it.SortOrder, i)
		}
	}
}

func TestReorderUnknownIDIsNoop(t *testing.T) {
	a := item("A", 0, nil)
	_, changed := Reorder([]models.NavbarItem{a}, uuid.New(), MoveUp)
	if changed {
		t.Error("unknown id must not reorder")
	}
}

// §8 property 7: attaching a category with two subcategories yields one
// dropdown child and two grandchildren.
func TestPlanAttachWithSubcategories(t *testing.T) {
	parent := item("services", 0, nil)
	tree := New([]models.NavbarItem{parent})

	catID := uuid.New()
	cat := models.ServiceCategory{
		ID:   catID,
		Name: "Design",
		Slug: "design",
		Subcategories: []models.ServiceSubcategory{
			{CategoryID: catID, Name: "Logos", Slug: "logos"},
			{CategoryID: catID, Name: "Branding", Slug: "branding"},
		},
	}

	actions := PlanAttach(tree, parent.ID, []models.ServiceCategory{cat}, true)
	if len(actions) != 1 {
		t.Fatalf("actions: got %d", len(actions))
	}

	action := actions[0]
	if action.Existing {
		t.Error("expected a new item, not an existing match")
	}
	if !action.Item.IsDropdown {
		t.Error("category item with subcategories must be a dropdown")
	}
	if action.Item.Href != "/services?category=design" {
		t.Errorf("href: got %q", action.Item.Href)
	}
	if len(action.Grandchildren) != 2 {
		t.Fatalf("grandchildren: got %d, want 2", len(action.Grandchildren))
	}
	if action.Grandchildren[0].Href != "/services?category=design&subcategory=logos" {
		t.Errorf("grandchild href: got %q", action.Grandchildren[0].Href)
	}
}

func TestPlanAttachSkipsExistingByHref(t *testing.T) {
	parent := item("services", 0, nil)
	existing := models.NavbarItem{
		ID:        uuid.New(),
		Label:     "Design",
		Href:      CategoryHref("design"),
		SortOrder: 0,
		ParentID:  &parent.ID,
	}
	tree := New([]models.NavbarItem{parent, existing})

	cat := models.ServiceCategory{ID: uuid.New(), Name: "Design", Slug: "design"}
	other := models.ServiceCategory{ID: uuid.New(), Name: "Video", Slug: "video"}

	actions := PlanAttach(tree, parent.ID, []models.ServiceCategory{cat, other}, false)
	if len(actions) != 2 {
		t.Fatalf("actions: got %d", len(actions))
	}
	if !actions[0].Existing {
		t.Error("design already present under parent; must not be re-created")
	}
	if actions[1].Existing {
		t.Error("video is new; must be created")
	}
	// New item slots in after the existing child.
	if actions[1].Item.SortOrder != 1 {
		t.Errorf("new item sort_order: got %d, want 1", actions[1].Item.SortOrder)
	}
}

func TestPlanAttachExistingItemSkipsExistingGrandchildren(t *testing.T) {
	parent := item("services", 0, nil)
	catItem := models.NavbarItem{
		ID:       uuid.New(),
		Label:    "Design",
		Href:     CategoryHref("design"),
		ParentID: &parent.ID,
	}
	grandchild := models.NavbarItem{
		ID:       uuid.New(),
		Label:    "Logos",
		Href:     SubcategoryHref("design", "logos"),
		ParentID: &catItem.ID,
	}
	tree := New([]models.NavbarItem{parent, catItem, grandchild})

	catID := uuid.New()
	cat := models.ServiceCategory{
		ID: catID, Name: "Design", Slug: "design",
		Subcategories: []models.ServiceSubcategory{
			{CategoryID: catID, Name: "Logos", Slug: "logos"},
			{CategoryID: catID, Name: "Print", Slug: "print"},
		},
	}

	actions := PlanAttach(tree, parent.ID, []models.ServiceCategory{cat}, true)
	if len(actions[0].Grandchildren) != 1 {
		t.Fatalf("grandchildren: got %d, want only the missing one", len(actions[0].Grandchildren))
	}
	if actions[0].Grandchildren[0].Label != "Print" {
		t.Errorf("grandchild: got %q", actions[0].Grandchildren[0].Label)
	}
}

func TestSubtreeDeleteOrderBottomUp(t *testing.T) {
	parent := item("services", 0, nil)
	child1 := item("design", 0, &parent.ID)
	child2 := item("video", 1, &parent.ID)
	gc1 := item("logos", 0, &child1.ID)
	gc2 := item("print", 1, &child1.ID)

	tree := New([]models.NavbarItem{parent, child1, child2, gc1, gc2})
	order := tree.SubtreeDeleteOrder(parent.ID)

	if len(order) != 4 {
		t.Fatalf("delete order: got %d ids, want 4 (parent retained)", len(order))
	}

	pos := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if _, ok := pos[parent.ID]; ok {
		t.Error("parent must not be in its own subtree delete order")
	}
	if pos[gc1.ID] > pos[child1.ID] || pos[gc2.ID] > pos[child1.ID] {
		t.Error("grandchildren must be deleted before their parent")
	}
}

func TestDropdownFixups(t *testing.T) {
	parent := item("services", 0, nil)
	parent.IsDropdown = false // wrong: it has a child
	child := item("design", 0, &parent.ID)
	child.IsDropdown = true // wrong: no children
	ok := item("about", 1, nil)

	tree := New([]models.NavbarItem{parent, child, ok})
	fixups := tree.DropdownFixups()

	if len(fixups) != 2 {
		t.Fatalf("fixups: got %d, want 2", len(fixups))
	}
	want := map[uuid.UUID]bool{parent.ID: true, child.ID: false}
	for _, f := range fixups {
		expected, relevant := want[f.ID]
		if !relevant {
			t.Errorf("unexpected fixup for %s", f.ID)
			continue
		}
		if f.Dropdown != expected {
			t.Errorf("fixup for %s: got %v, want %v", f.ID, f.Dropdown, expected)
		}
	}
}
