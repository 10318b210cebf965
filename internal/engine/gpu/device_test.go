package gpu

import "testing"

func TestFormatForChannels(t *testing.T) {
	tests := []struct {
		channels int
		want     PixelFormat
		ok       bool
	}{
		{1, FormatRed, true},
		{2, FormatRG, true},
		{3, FormatRGB, true},
		{4, FormatRGBA, true},
		{0, 0, false},
		{5, 0, false},
	}

	for _, tt := range tests {
		got, ok := FormatForChannels(tt.channels)
		if ok != tt.ok || got != tt.want {
			t.Errorf("FormatForChannels(%d) = %v, %v; want %v, %v", tt.channels, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStageString(t *testing.T) {
	if StageVertex.String() != "VERTEX" || StageFragment.String() != "FRAGMENT" || StageGeometry.String() != "GEOMETRY" {
		t.Error("unexpected stage names")
	}
}

func TestVertexArrayIndexed(t *testing.T) {
	if (VertexArray{VAO: 1, VBO: 2}).Indexed() {
		t.Error("array without element buffer reported as indexed")
	}
	if !(VertexArray{VAO: 1, VBO: 2, EBO: 3}).Indexed() {
		t.Error("array with element buffer reported as not indexed")
	}
}
