package core

import "testing"

func TestPageRequestNormalizeDefaults(t *testing.T) {
	cases := []struct {
		name      string
		input     PageRequest
		wantPage  int
		wantLimit int
	}{
		{name: "zero values", input: PageRequest{}, wantPage: 1, wantLimit: 10},
		{name: "negative values", input: PageRequest{Page: -3, Limit: -1}, wantPage: 1, wantLimit: 10},
		{name: "valid values kept", input: PageRequest{Page: 4, Limit: 25}, wantPage: 4, wantLimit: 25},
		{name: "limit capped", input: PageRequest{Page: 2, Limit: 500}, wantPage: 2, wantLimit: MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.input.Normalize()
			if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
				t.Fatalf("got page=%d limit=%d, want page=%d limit=%d",
					got.Page, got.Limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestParsePageRequest(t *testing.T) {
	cases := []struct {
		name      string
		rawPage   string
		rawLimit  string
		wantPage  int
		wantLimit int
	}{
		{name: "empty inputs", rawPage: "", rawLimit: "", wantPage: 1, wantLimit: 10},
		{name: "garbage inputs", rawPage: "abc", rawLimit: "x", wantPage: 1, wantLimit: 10},
		{name: "valid inputs", rawPage: "3", rawLimit: "20", wantPage: 3, wantLimit: 20},
		{name: "page valid limit garbage", rawPage: "2", rawLimit: "nope", wantPage: 2, wantLimit: 10},
		{name: "zero page", rawPage: "0", rawLimit: "5", wantPage: 1, wantLimit: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePageRequest(tc.rawPage, tc.rawLimit)
			if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
				t.Fatalf("got page=%d limit=%d, want page=%d limit=%d",
					got.Page, got.Limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestPageSlice(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		req       PageRequest
		wantStart int
		wantEnd   int
	}{
		{name: "first page full", total: 25, req: PageRequest{Page: 1, Limit: 10}, wantStart: 0, wantEnd: 10},
		{name: "middle page", total: 25, req: PageRequest{Page: 2, Limit: 10}, wantStart: 10, wantEnd: 20},
		{name: "last partial page", total: 25, req: PageRequest{Page: 3, Limit: 10}, wantStart: 20, wantEnd: 25},
		{name: "page past end is empty", total: 3, req: PageRequest{Page: 2, Limit: 10}, wantStart: 3, wantEnd: 3},
		{name: "empty collection", total: 0, req: PageRequest{Page: 1, Limit: 10}, wantStart: 0, wantEnd: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := PageSlice(tc.total, tc.req)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Fatalf("got [%d, %d), want [%d, %d)", start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}
