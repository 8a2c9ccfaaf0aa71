package supabase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// fakeBackend is an in-memory PostgREST lookalike covering the slice of the
// protocol this client uses: eq./gte./lte. column filters, order, limit,
// and plain insert/patch/delete.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int
	tables map[string][]map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID: 1,
		tables: map[string][]map[string]any{
			"users":      {},
			"expenses":   {},
			"categories": {},
		},
	}
}

func (b *fakeBackend) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(b.handle))
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	table, ok := strings.CutPrefix(r.URL.Path, "/rest/v1/")
	if !ok {
		http.NotFound(w, r)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	rows, ok := b.tables[table]
	if !ok {
		http.Error(w, fmt.Sprintf(`{"message":"relation %q does not exist"}`, table), http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		matched := filterRows(rows, r.URL.Query())
		orderRows(matched, r.URL.Query().Get("order"))
		matched = limitRows(matched, r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, matched)

	case http.MethodPost:
		var row map[string]any
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		row["id"] = strconv.Itoa(b.nextID)
		b.nextID++
		b.tables[table] = append(rows, row)
		w.WriteHeader(http.StatusCreated)

	case http.MethodPatch:
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		for _, row := range filterRows(rows, r.URL.Query()) {
			for k, v := range patch {
				row[k] = v
			}
		}
		w.WriteHeader(http.StatusOK)

	case http.MethodDelete:
		matched := filterRows(rows, r.URL.Query())
		kept := rows[:0]
		for _, row := range rows {
			if !containsRow(matched, row) {
				kept = append(kept, row)
			}
		}
		b.tables[table] = kept
		w.WriteHeader(http.StatusOK)

	default:
		http.Error(w, `{"message":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

func containsRow(rows []map[string]any, target map[string]any) bool {
	for _, row := range rows {
		if fmt.Sprint(row["id"]) == fmt.Sprint(target["id"]) {
			return true
		}
	}
	return false
}

func filterRows(rows []map[string]any, query map[string][]string) []map[string]any {
	matched := make([]map[string]any, 0, len(rows))
rowLoop:
	for _, row := range rows {
		for column, conditions := range query {
			if column == "order" || column == "limit" {
				continue
			}
			for _, cond := range conditions {
				op, operand, ok := strings.Cut(cond, ".")
				if !ok {
					continue
				}
				if !matches(fmt.Sprint(row[column]), op, operand) {
					continue rowLoop
				}
			}
		}
		matched = append(matched, row)
	}
	return matched
}

func matches(value, op, operand string) bool {
	cmp := compareValues(value, operand)
	switch op {
	case "eq":
		return cmp == 0
	case "gte":
		return cmp >= 0
	case "lte":
		return cmp <= 0
	default:
		return false
	}
}

// compareValues compares numerically when both sides parse as numbers,
// lexicographically otherwise (ISO dates sort correctly either way).
func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

func orderRows(rows []map[string]any, order string) {
	if order == "" {
		return
	}
	type key struct {
		column string
		desc   bool
	}
	var keys []key
	for _, part := range strings.Split(order, ",") {
		column, dir, _ := strings.Cut(part, ".")
		keys = append(keys, key{column: column, desc: dir == "desc"})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			cmp := compareValues(fmt.Sprint(rows[i][k.column]), fmt.Sprint(rows[j][k.column]))
			if cmp == 0 {
				continue
			}
			if k.desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func limitRows(rows []map[string]any, limit string) []map[string]any {
	if limit == "" {
		return rows
	}
	n, err := strconv.Atoi(limit)
	if err != nil || n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
