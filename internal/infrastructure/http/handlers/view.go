package handlers

import (
	"sort"
	"sync"
)

// MenuView is the presentation state a caller keeps for one menu: which
// days are expanded and which meals are selected for regeneration
type MenuView struct {
	ExpandedDays    []int    `json:"expanded_days"`
	SelectedMealIDs []string `json:"selected_meal_ids"`
}

type viewState struct {
	expanded map[int]bool
	selected map[string]bool
}

// ViewStore keeps MenuView state per user and menu in memory
type ViewStore struct {
	mu    sync.Mutex
	views map[string]*viewState
}

// NewViewStore creates an empty view store
func NewViewStore() *ViewStore {
	return &ViewStore{views: make(map[string]*viewState)}
}

func viewKey(userID, menuID string) string {
	return userID + "/" + menuID
}

func (s *ViewStore) state(userID, menuID string) *viewState {
	key := viewKey(userID, menuID)
	v, ok := s.views[key]
	if !ok {
		v = &viewState{expanded: map[int]bool{}, selected: map[string]bool{}}
		s.views[key] = v
	}
	return v
}

// Get returns a snapshot of the view. Reading never creates state.
func (s *ViewStore) Get(userID, menuID string) MenuView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[viewKey(userID, menuID)]
	if !ok {
		return snapshot(&viewState{})
	}
	return snapshot(v)
}

// ToggleDay flips the expanded flag of a day
func (s *ViewStore) ToggleDay(userID, menuID string, day int) MenuView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.state(userID, menuID)
	if v.expanded[day] {
		delete(v.expanded, day)
	} else {
		v.expanded[day] = true
	}
	return snapshot(v)
}

// ToggleMeal flips the selected flag of a meal
func (s *ViewStore) ToggleMeal(userID, menuID, mealID string) MenuView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.state(userID, menuID)
	if v.selected[mealID] {
		delete(v.selected, mealID)
	} else {
		v.selected[mealID] = true
	}
	return snapshot(v)
}

// ClearSelection unselects every meal
func (s *ViewStore) ClearSelection(userID, menuID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := viewKey(userID, menuID)
	v, ok := s.views[key]
	if !ok {
		return
	}
	if len(v.expanded) == 0 {
		delete(s.views, key)
		return
	}
	v.selected = map[string]bool{}
}

func snapshot(v *viewState) MenuView {
	out := MenuView{
		ExpandedDays:    make([]int, 0, len(v.expanded)),
		SelectedMealIDs: make([]string, 0, len(v.selected)),
	}
	for d := range v.expanded {
		out.ExpandedDays = append(out.ExpandedDays, d)
	}
	for id := range v.selected {
		out.SelectedMealIDs = append(out.SelectedMealIDs, id)
	}
	sort.Ints(out.ExpandedDays)
	sort.Strings(out.SelectedMealIDs)
	return out
}
