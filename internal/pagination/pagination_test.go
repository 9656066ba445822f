package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		page     int
		pageSize int
	}{
		{"empty gets defaults", PageRequest{}, 1, 20},
		{"keeps valid values", PageRequest{Page: 3, PageSize: 10}, 3, 10},
		{"caps page size", PageRequest{Page: 1, PageSize: 1000}, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.page || req.PageSize != tt.pageSize {
				t.Errorf("expected %d/%d, got %d/%d", tt.page, tt.pageSize, req.Page, req.PageSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("expected offset 50, got %d", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 1, 2, 5)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
	})

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 20, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", resp.Data)
		}
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", resp.TotalPages)
		}
	})
}
