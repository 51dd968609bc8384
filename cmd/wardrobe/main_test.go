package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closetServer records requests and answers them from handlers keyed by "METHOD path".
type closetServer struct {
	handlers map[string]http.HandlerFunc
	requests []string
	mu       sync.Mutex
}

func newClosetServer(t *testing.T, handlers map[string]http.HandlerFunc) (*closetServer, string) {
	t.Helper()
	s := &closetServer{handlers: handlers}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/v1")
		s.mu.Lock()
		s.requests = append(s.requests, route)
		s.mu.Unlock()

		h, ok := s.handlers[route]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"not found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)
	return s, server.URL + "/api/v1"
}

func (s *closetServer) count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r == route {
			n++
		}
	}
	return n
}

func reply(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
}

func fail(status int, detail string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"detail": detail})
	}
}

// execute runs the CLI with args against baseURL and returns stdout and stderr.
func execute(t *testing.T, baseURL, stdin string, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("WARDROBE_API_RETRY_MAX_ATTEMPTS", "1")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--api-url", baseURL, "--log-level", "error"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestList_SendsFiltersAndRendersJSON(t *testing.T) {
	server, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"GET /clothes/": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "上衣", r.URL.Query().Get("category"))
			assert.Equal(t, "true", r.URL.Query().Get("is_favorite"))
			assert.Equal(t, "春季", r.URL.Query().Get("season"))
			assert.False(t, r.URL.Query().Has("is_archived"))
			reply([]map[string]any{
				{"id": 1, "filename": "a.png", "category": "上衣", "type": "衬衫"},
				{"id": 2, "filename": "b.png", "category": "上衣", "type": "T恤"},
			})(w, r)
		},
	})

	stdout, _, err := execute(t, baseURL, "", "list", "--category", "上衣", "--favorites", "--season", "春", "--format", "json")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "衬衫", items[0]["type"])
	assert.Equal(t, 1, server.count("GET /clothes/"))
}

func TestList_TableOutput(t *testing.T) {
	_, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"GET /clothes/": reply([]map[string]any{
			{"id": 7, "filename": "c.png", "category": "外套", "type": "风衣", "is_favorite": true},
		}),
	})

	stdout, _, err := execute(t, baseURL, "", "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "风衣")
	assert.Contains(t, stdout, "1 garment(s), 1 favorite(s)")
}

func TestShow_InvalidID(t *testing.T) {
	_, baseURL := newClosetServer(t, nil)

	_, _, err := execute(t, baseURL, "", "show", "abc")

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "not a garment id")
}

func TestShow_NotFoundSurfacesDetail(t *testing.T) {
	_, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"GET /clothes/9": fail(http.StatusNotFound, "衣物不存在"),
	})

	_, _, err := execute(t, baseURL, "", "show", "9")

	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "衣物不存在")
}

func TestFavorite(t *testing.T) {
	_, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"POST /clothes/3/favorite": reply(map[string]any{"is_favorite": true}),
	})

	stdout, _, err := execute(t, baseURL, "", "favorite", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Garment #3 added to favorites")
}

func TestWear(t *testing.T) {
	_, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"POST /clothes/3/wear": reply(map[string]any{"wear_count": 5}),
	})

	stdout, _, err := execute(t, baseURL, "", "wear", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Garment #3 worn 5 time(s)")
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		wantOutput  string
		args        []string
		wantDeletes int
	}{
		{
			name:        "declined",
			stdin:       "n\n",
			args:        []string{"delete", "4"},
			wantDeletes: 0,
			wantOutput:  "Delete cancelled",
		},
		{
			name:        "confirmed",
			stdin:       "y\n",
			args:        []string{"delete", "4"},
			wantDeletes: 1,
			wantOutput:  "Deleted garment #4",
		},
		{
			name:        "yes flag skips the question",
			args:        []string{"delete", "4", "--yes"},
			wantDeletes: 1,
			wantOutput:  "Deleted garment #4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
				"DELETE /clothes/4": reply(nil),
			})

			stdout, _, err := execute(t, baseURL, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeletes, server.count("DELETE /clothes/4"))
			assert.Contains(t, stdout, tt.wantOutput)
		})
	}
}

func TestEdit_SendsOnlyGivenFields(t *testing.T) {
	_, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"PUT /clothes/5": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{
				"type":   "风衣",
				"season": []any{"春季", "秋季"},
				"price":  399.0,
			}, body)
			reply(map[string]any{"id": 5, "filename": "e.png", "type": "风衣"})(w, r)
		},
	})

	stdout, _, err := execute(t, baseURL, "", "edit", "5", "--type", "风衣", "--season", "春,秋季", "--price", "399", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"type": "风衣"`)
}

func TestEdit_NothingToChange(t *testing.T) {
	server, baseURL := newClosetServer(t, nil)

	_, _, err := execute(t, baseURL, "", "edit", "5")

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "nothing to change")
	assert.Zero(t, server.count("PUT /clothes/5"))
}

func TestBatch(t *testing.T) {
	t.Run("favorite", func(t *testing.T) {
		server, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
			"POST /clothes/1/favorite": reply(map[string]any{"is_favorite": true}),
			"POST /clothes/2/favorite": fail(http.StatusInternalServerError, "boom"),
			"POST /clothes/3/favorite": reply(map[string]any{"is_favorite": true}),
		})

		stdout, _, err := execute(t, baseURL, "", "batch", "favorite", "1,2", "3", "--format", "json")
		require.NoError(t, err)

		var result struct {
			Errors  map[string]string `json:"errors"`
			Action  string            `json:"action"`
			Success int               `json:"success"`
			Failed  int               `json:"failed"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &result))
		assert.Equal(t, "favorite", result.Action)
		assert.Equal(t, 2, result.Success)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Errors["2"], "boom")
		assert.Equal(t, 1, server.count("POST /clothes/2/favorite"), "mutations are never retried")
	})

	t.Run("all failed", func(t *testing.T) {
		_, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
			"POST /clothes/1/archive": fail(http.StatusInternalServerError, "boom"),
		})

		_, _, err := execute(t, baseURL, "", "batch", "archive", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "archive failed for all 1 garment(s)")
	})

	t.Run("delete declined", func(t *testing.T) {
		server, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
			"DELETE /clothes/1": reply(nil),
		})

		stdout, _, err := execute(t, baseURL, "no\n", "batch", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Delete cancelled")
		assert.Zero(t, server.count("DELETE /clothes/1"))
	})

	t.Run("unknown action", func(t *testing.T) {
		_, baseURL := newClosetServer(t, nil)

		_, _, err := execute(t, baseURL, "", "batch", "paint", "1")
		var userErr *common.UserError
		require.ErrorAs(t, err, &userErr)
		assert.Contains(t, userErr.UserMessage, "unknown batch action")
	})

	t.Run("no ids", func(t *testing.T) {
		_, baseURL := newClosetServer(t, nil)

		_, _, err := execute(t, baseURL, "", "batch", "favorite")
		require.ErrorIs(t, err, common.ErrEmptySelection)
	})
}

func TestStats_LoadsStatisticsAndFilters(t *testing.T) {
	server, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"GET /clothes/statistics": reply(map[string]any{
			"total_items":           3,
			"favorites":             1,
			"category_distribution": map[string]int{"上衣": 2, "裤子": 1},
		}),
		"GET /clothes/filters": reply(map[string]any{"categories": []string{"上衣", "裤子"}}),
	})

	stdout, _, err := execute(t, baseURL, "", "stats", "--format", "json")
	require.NoError(t, err)

	var out struct {
		Statistics struct {
			TotalItems int `json:"total_items"`
		} `json:"statistics"`
		Filters struct {
			Categories []string `json:"categories"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 3, out.Statistics.TotalItems)
	assert.Equal(t, []string{"上衣", "裤子"}, out.Filters.Categories)
	assert.Equal(t, 1, server.count("GET /clothes/filters"))
}

func TestStats_FailureStopsRendering(t *testing.T) {
	_, baseURL := newClosetServer(t, map[string]http.HandlerFunc{
		"GET /clothes/statistics": fail(http.StatusBadRequest, "统计失败"),
		"GET /clothes/filters":    reply(map[string]any{}),
	})

	stdout, _, err := execute(t, baseURL, "", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "统计失败")
	assert.Empty(t, stdout)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, baseURL := newClosetServer(t, nil)

	_, _, err := execute(t, baseURL, "", "list", "--format", "xml")
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestVersion(t *testing.T) {
	_, baseURL := newClosetServer(t, nil)

	stdout, _, err := execute(t, baseURL, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "wardrobe dev\n", stdout)
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []int64
		wantErr bool
	}{
		{name: "separate", args: []string{"1", "2"}, want: []int64{1, 2}},
		{name: "comma list", args: []string{"1,2", "3"}, want: []int64{1, 2, 3}},
		{name: "blank parts skipped", args: []string{"1,,2,"}, want: []int64{1, 2}},
		{name: "not a number", args: []string{"1", "x"}, wantErr: true},
		{name: "zero", args: []string{"0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Error: friendly", errorMessage(common.NewUserError("friendly", assert.AnError)))
	assert.Equal(t, "Error: "+assert.AnError.Error(), errorMessage(assert.AnError))
}
