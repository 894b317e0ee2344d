package vars

import "testing"

func TestDataResolve(t *testing.T) {
	data := Data{
		"product_image": "source_data/A1079.jpg",
		"price_text":    "¥199.00",
		"empty":         "",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single placeholder",
			in:   "${product_image}",
			want: "source_data/A1079.jpg",
		},
		{
			name: "embedded placeholder",
			in:   "now only ${price_text}!",
			want: "now only ¥199.00!",
		},
		{
			name: "multiple placeholders",
			in:   "${product_image}:${price_text}",
			want: "source_data/A1079.jpg:¥199.00",
		},
		{
			name: "missing name stays verbatim",
			in:   "${missing}",
			want: "${missing}",
		},
		{
			name: "mixed present and missing",
			in:   "${price_text} ${missing}",
			want: "¥199.00 ${missing}",
		},
		{
			name: "empty value substitutes to nothing",
			in:   "[${empty}]",
			want: "[]",
		},
		{
			name: "no placeholders passes through",
			in:   "plain text",
			want: "plain text",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "unterminated placeholder left alone",
			in:   "${price_text",
			want: "${price_text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := data.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDataResolveIdempotent(t *testing.T) {
	data := Data{"price_text": "¥88.00"}
	once := data.Resolve("price ${price_text}")
	twice := data.Resolve(once)
	if once != twice {
		t.Errorf("second resolve changed output: %q -> %q", once, twice)
	}
}

func TestDataResolveNoRecursion(t *testing.T) {
	// A substituted value containing placeholder syntax must not be
	// expanded again.
	data := Data{
		"outer": "${inner}",
		"inner": "should not appear",
	}
	if got := data.Resolve("${outer}"); got != "${inner}" {
		t.Errorf("Resolve expanded recursively: got %q", got)
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewStore(map[string]string{"file_name": "A1079"})
	snap := store.Snapshot()

	store.Update(map[string]string{"file_name": "B2000", "price_text": "¥50.00"})

	if snap["file_name"] != "A1079" {
		t.Errorf("snapshot mutated by later update: %q", snap["file_name"])
	}
	next := store.Snapshot()
	if next["file_name"] != "B2000" || next["price_text"] != "¥50.00" {
		t.Errorf("update not visible in new snapshot: %v", next)
	}

	// Mutating a snapshot must not leak back into the store.
	next["file_name"] = "hacked"
	if store.Snapshot()["file_name"] != "B2000" {
		t.Error("snapshot mutation leaked into store")
	}
}

func TestStoreSet(t *testing.T) {
	store := NewStore(nil)
	store.Set("price_text", "¥12.00")
	if got := store.Snapshot().Resolve("${price_text}"); got != "¥12.00" {
		t.Errorf("Set then Resolve = %q", got)
	}
}
