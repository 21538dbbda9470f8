package handler

import (
	"encoding/base64"
	"testing"
)

func TestDecodeImages(t *testing.T) {
	plain := base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))

	tests := []struct {
		name    string
		in      []string
		want    int
		wantErr bool
	}{
		{"empty", nil, 0, false},
		{"plain base64", []string{plain}, 1, false},
		{"data uri prefix", []string{"data:image/jpeg;base64," + plain}, 1, false},
		{"mixed", []string{plain, "data:image/png;base64," + plain}, 2, false},
		{"garbage", []string{"not-base64!!"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeImages(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d images, want %d", len(got), tt.want)
			}
			for _, img := range got {
				if string(img) != "jpeg bytes" {
					t.Fatalf("decoded %q", img)
				}
			}
		})
	}
}
