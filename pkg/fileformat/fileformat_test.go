package fileformat

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		is3D    bool
		isImage bool
	}{
		{"ship.g3db", true, false},
		{"ship.G3DJ", true, false},
		{"tree.dae", true, false},
		{"rock.obj", true, false},
		{"hero.FBX", true, false},
		{"grass.png", false, true},
		{"sand.jpg", false, true},
		{"sand.JPEG", false, true},
		{"dirt.tga", false, true},
		{"legacy.bmp", false, true},
		{"web.webp", false, true},
		{"island.terra", false, false},
		{"island.terra.meta", false, false},
		{"README", false, false},
		{"", false, false},
		{"notpng", false, false},
	}

	for _, tc := range tests {
		if got := Is3DFormat(tc.name); got != tc.is3D {
			t.Errorf("Is3DFormat(%q) = %v, expected %v", tc.name, got, tc.is3D)
		}
		if got := IsImage(tc.name); got != tc.isImage {
			t.Errorf("IsImage(%q) = %v, expected %v", tc.name, got, tc.isImage)
		}
	}
}

func TestSpecificFormats(t *testing.T) {
	if !IsJPG("a.jpg") || !IsJPG("a.jpeg") || IsJPG("a.png") {
		t.Error("IsJPG mismatch")
	}
	if !IsPNG("a.png") || !IsTGA("a.TGA") {
		t.Error("IsPNG/IsTGA mismatch")
	}
	if !IsG3DB("m.g3db") || !IsG3DJ("m.g3dj") || !IsCollada("m.dae") || !IsWavefront("m.obj") || !IsFBX("m.fbx") {
		t.Error("3D format helpers mismatch")
	}
	if !IsTerra("t.terra") || IsTerra("t.terra.meta") {
		t.Error("IsTerra mismatch")
	}
	if !IsMeta("t.terra.meta") {
		t.Error("IsMeta mismatch")
	}
	if Ext("Dir.v2/File.PNG") != "png" {
		t.Errorf("Ext: got %q", Ext("Dir.v2/File.PNG"))
	}
}
