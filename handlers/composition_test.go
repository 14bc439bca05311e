package handlers

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCompositionUniquePerComposer(t *testing.T) {
	router := setupTest(t)
	bach := mustCreate(t, router, "/composer/create", `{"full_name":"Johann Sebastian Bach","short_name":"Bach"}`)
	beethoven := mustCreate(t, router, "/composer/create", `{"full_name":"Ludwig van Beethoven","short_name":"Beethoven"}`)

	body := fmt.Sprintf(`{"composer_id":%d,"title":"Symphony No. 5"}`, bach)
	mustCreate(t, router, "/composition/create", body)

	w := doJSON(t, router, http.MethodPost, "/composition/create", body)
	if w.Code != http.StatusConflict {
		t.Errorf("same title same composer = %d, want 409", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Symphony No. 5"}`, beethoven))
	if w.Code != http.StatusCreated {
		t.Errorf("same title other composer = %d, want 201", w.Code)
	}
}

func TestCompositionCatalogConflict(t *testing.T) {
	router := setupTest(t)
	bach := mustCreate(t, router, "/composer/create", `{"full_name":"Johann Sebastian Bach","short_name":"Bach"}`)
	mustCreate(t, router, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Toccata and Fugue","catalog_number":"BWV 565"}`, bach))

	w := doJSON(t, router, http.MethodPost, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Something Else","catalog_number":"BWV 565"}`, bach))
	if w.Code != http.StatusConflict {
		t.Errorf("same catalog number same composer = %d, want 409", w.Code)
	}
}

func TestCompositionCreateMissingComposer(t *testing.T) {
	router := setupTest(t)
	w := doJSON(t, router, http.MethodPost, "/composition/create", `{"composer_id":999,"title":"Phantom"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing composer = %d, want 404", w.Code)
	}
}

func TestCompositionSortOrderDerived(t *testing.T) {
	router := setupTest(t)
	bach := mustCreate(t, router, "/composer/create", `{"full_name":"Johann Sebastian Bach","short_name":"Bach"}`)

	id := mustCreate(t, router, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Concerto","catalog_number":"BWV 1060a-2"}`, bach))
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/composition/get?id=%d", id), "")
	info := decode[CompositionInfo](t, w)
	if info.SortOrder == nil || *info.SortOrder != 1060 {
		t.Errorf("sort_order = %v, want 1060", info.SortOrder)
	}

	// Changing the catalog number recomputes the key, clearing it clears the key
	w = doJSON(t, router, http.MethodPost, "/composition/save", fmt.Sprintf(`{"id":%d,"catalog_number":"BWV 29"}`, id))
	info = decode[CompositionInfo](t, w)
	if info.SortOrder == nil || *info.SortOrder != 29 {
		t.Errorf("sort_order after save = %v, want 29", info.SortOrder)
	}
	w = doJSON(t, router, http.MethodPost, "/composition/save", fmt.Sprintf(`{"id":%d,"catalog_number":null}`, id))
	info = decode[CompositionInfo](t, w)
	if info.SortOrder != nil {
		t.Errorf("sort_order after clearing = %v, want nil", info.SortOrder)
	}
}

func TestCompositionListOrderingAndCounts(t *testing.T) {
	router := setupTest(t)
	bach := mustCreate(t, router, "/composer/create", `{"full_name":"Johann Sebastian Bach","short_name":"Bach"}`)

	// Created out of catalog order; "WoO" has no digits so it sorts last
	c1048 := mustCreate(t, router, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Brandenburg Concerto No. 3","catalog_number":"BWV 1048"}`, bach))
	mustCreate(t, router, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Unnumbered Chorale","catalog_number":"WoO"}`, bach))
	mustCreate(t, router, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Cantata","catalog_number":"BWV 29"}`, bach))

	mustCreate(t, router, "/recording/create", fmt.Sprintf(`{"composition_id":%d,"artist_ids":[]}`, c1048))
	mustCreate(t, router, "/recording/create", fmt.Sprintf(`{"composition_id":%d,"artist_ids":[]}`, c1048))

	w := doJSON(t, router, http.MethodGet, "/composition/list", "")
	result := decode[[]CompositionListInfo](t, w)
	if len(result) != 3 {
		t.Fatalf("got %d compositions, want 3", len(result))
	}
	wantTitles := []string{"Cantata", "Brandenburg Concerto No. 3", "Unnumbered Chorale"}
	for i, title := range wantTitles {
		if result[i].Title != title {
			t.Errorf("position %d = %s, want %s", i, result[i].Title, title)
		}
	}
	for _, info := range result {
		want := int64(0)
		if info.ID == c1048 {
			want = 2
		}
		if info.RecordingCount != want {
			t.Errorf("%s recording_count = %d, want %d", info.Title, info.RecordingCount, want)
		}
	}
}

func TestCompositionListFilterByComposer(t *testing.T) {
	router := setupTest(t)
	bach := mustCreate(t, router, "/composer/create", `{"full_name":"Johann Sebastian Bach","short_name":"Bach"}`)
	mozart := mustCreate(t, router, "/composer/create", `{"full_name":"Wolfgang Amadeus Mozart","short_name":"Mozart"}`)
	mustCreate(t, router, "/composition/create", fmt.Sprintf(`{"composer_id":%d,"title":"Mass in B minor"}`, bach))
	mustCreate(t, router, "/composition/create", fmt.Sprintf(`{"composer_id":%d,"title":"Requiem"}`, mozart))

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/composition/list?composer_id=%d", mozart), "")
	result := decode[[]CompositionListInfo](t, w)
	if len(result) != 1 || result[0].Title != "Requiem" {
		t.Errorf("filtered list: got %+v", result)
	}
}
