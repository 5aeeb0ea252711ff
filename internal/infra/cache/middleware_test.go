package cache

import "testing"

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		genA     string
		genB     string
		pathA    string
		pathB    string
		queryA   string
		queryB   string
		wantSame bool
	}{
		{
			name: "same request in same generation hits the same key",
			genA: "3", genB: "3",
			pathA: "/api/v1/availability/grid", pathB: "/api/v1/availability/grid",
			queryA: "from=2026-09-10&to=2026-09-12", queryB: "from=2026-09-10&to=2026-09-12",
			wantSame: true,
		},
		{
			name: "bumping the generation orphans the old key",
			genA: "3", genB: "4",
			pathA: "/api/v1/availability/grid", pathB: "/api/v1/availability/grid",
			queryA: "from=2026-09-10&to=2026-09-12", queryB: "from=2026-09-10&to=2026-09-12",
			wantSame: false,
		},
		{
			name: "different query strings get different keys",
			genA: "3", genB: "3",
			pathA: "/api/v1/availability/grid", pathB: "/api/v1/availability/grid",
			queryA: "from=2026-09-10&to=2026-09-12", queryB: "from=2026-09-10&to=2026-09-13",
			wantSame: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyA := cacheKey(tt.genA, tt.pathA, tt.queryA)
			keyB := cacheKey(tt.genB, tt.pathB, tt.queryB)
			if (keyA == keyB) != tt.wantSame {
				t.Fatalf("cacheKey equality = %v, want %v (%q vs %q)", keyA == keyB, tt.wantSame, keyA, keyB)
			}
		})
	}
}

func TestNilClientMiddlewareIsPassThrough(t *testing.T) {
	if ResponseCache(nil, 0) == nil {
		t.Fatal("ResponseCache(nil) returned nil handler")
	}
	if Invalidate(nil) == nil {
		t.Fatal("Invalidate(nil) returned nil handler")
	}
}
