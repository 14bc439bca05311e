package handlers

import (
	"fmt"
	"net/http"
	"testing"
)

func TestComposerCreateConflicts(t *testing.T) {
	router := setupTest(t)
	mustCreate(t, router, "/composer/create", `{"full_name":"Ludwig van Beethoven","short_name":"Beethoven"}`)

	w := doJSON(t, router, http.MethodPost, "/composer/create", `{"full_name":"Ludwig van Beethoven","short_name":"LvB"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate full_name: code = %d, want 409", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/composer/create", `{"full_name":"L. v. Beethoven","short_name":"Beethoven"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate short_name: code = %d, want 409", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/composer/create", `{"full_name":"L. v. Beethoven","short_name":"LvB"}`)
	if w.Code != http.StatusCreated {
		t.Errorf("distinct names: code = %d, want 201", w.Code)
	}
}

func TestComposerListOrdering(t *testing.T) {
	router := setupTest(t)
	// Missing birth year sorts last regardless of name
	mustCreate(t, router, "/composer/create", `{"full_name":"Zeta","short_name":"Z"}`)
	mustCreate(t, router, "/composer/create", `{"full_name":"Alpha","short_name":"A","birth_year":1685}`)
	mustCreate(t, router, "/composer/create", `{"full_name":"Beta","short_name":"B","birth_year":1770}`)

	w := doJSON(t, router, http.MethodGet, "/composer/list", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d, body %s", w.Code, w.Body.String())
	}
	result := decode[[]ComposerInfo](t, w)
	if len(result) != 3 {
		t.Fatalf("got %d composers, want 3", len(result))
	}
	want := []string{"Alpha", "Beta", "Zeta"}
	for i, name := range want {
		if result[i].FullName != name {
			t.Errorf("position %d = %s, want %s", i, result[i].FullName, name)
		}
	}
}

func TestComposerListSearch(t *testing.T) {
	router := setupTest(t)
	mustCreate(t, router, "/composer/create", `{"full_name":"Antonin Dvorak","short_name":"Dvorak","nationality":"Czech"}`)
	mustCreate(t, router, "/composer/create", `{"full_name":"Edvard Grieg","short_name":"Grieg","nationality":"Norwegian"}`)

	w := doJSON(t, router, http.MethodGet, "/composer/list?search=czech", "")
	result := decode[[]ComposerInfo](t, w)
	if len(result) != 1 || result[0].ShortName != "Dvorak" {
		t.Errorf("search by nationality: got %+v", result)
	}
}

func TestComposerSavePartial(t *testing.T) {
	router := setupTest(t)
	id := mustCreate(t, router, "/composer/create", `{"full_name":"Jean Sibelius","short_name":"Sibelius","nationality":"Finnish","birth_year":1865}`)

	// Explicit null clears, omitted fields stay
	w := doJSON(t, router, http.MethodPost, "/composer/save", fmt.Sprintf(`{"id":%d,"nationality":null}`, id))
	if w.Code != http.StatusOK {
		t.Fatalf("save = %d, body %s", w.Code, w.Body.String())
	}
	info := decode[ComposerInfo](t, w)
	if info.Nationality != nil {
		t.Errorf("nationality not cleared: %v", *info.Nationality)
	}
	if info.BirthYear == nil || *info.BirthYear != 1865 {
		t.Errorf("birth_year changed: %v", info.BirthYear)
	}

	// No fields at all is a validation error
	w = doJSON(t, router, http.MethodPost, "/composer/save", fmt.Sprintf(`{"id":%d}`, id))
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty update = %d, want 400", w.Code)
	}

	// Renaming onto an existing name conflicts, renaming onto itself does not
	mustCreate(t, router, "/composer/create", `{"full_name":"Carl Nielsen","short_name":"Nielsen"}`)
	w = doJSON(t, router, http.MethodPost, "/composer/save", fmt.Sprintf(`{"id":%d,"full_name":"Carl Nielsen"}`, id))
	if w.Code != http.StatusConflict {
		t.Errorf("rename conflict = %d, want 409", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/composer/save", fmt.Sprintf(`{"id":%d,"full_name":"Jean Sibelius"}`, id))
	if w.Code != http.StatusOK {
		t.Errorf("self rename = %d, want 200", w.Code)
	}
}

func TestComposerDeleteCascades(t *testing.T) {
	router := setupTest(t)
	composerID := mustCreate(t, router, "/composer/create", `{"full_name":"Johann Sebastian Bach","short_name":"Bach"}`)
	compositionID := mustCreate(t, router, "/composition/create",
		fmt.Sprintf(`{"composer_id":%d,"title":"Brandenburg Concerto No. 3","catalog_number":"BWV 1048"}`, composerID))
	recordingID := mustCreate(t, router, "/recording/create",
		fmt.Sprintf(`{"composition_id":%d,"year":1982,"artist_ids":[]}`, compositionID))

	w := doJSON(t, router, http.MethodPost, "/composer/delete", fmt.Sprintf(`{"id":%d}`, composerID))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/composition/get?id=%d", compositionID), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("composition survived cascade: %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/recording/get?id=%d", recordingID), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("recording survived cascade: %d", w.Code)
	}
}

func TestComposerDeleteMissing(t *testing.T) {
	router := setupTest(t)
	w := doJSON(t, router, http.MethodPost, "/composer/delete", `{"id":12345}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete missing = %d, want 404", w.Code)
	}
}
