package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFace(t *testing.T) {
	for _, w := range []Weight{Regular, Bold} {
		t.Run(w.String(), func(t *testing.T) {
			face, err := Face(w, 12)
			if err != nil {
				t.Fatalf("Face(%s, 12): %v", w, err)
			}
			defer face.Close()

			if adv := font.MeasureString(face, "class 0"); adv <= 0 {
				t.Errorf("advance = %v, want > 0", adv)
			}
		})
	}
}

func TestFaceBoldIsWider(t *testing.T) {
	regular, err := Face(Regular, 24)
	if err != nil {
		t.Fatal(err)
	}
	defer regular.Close()
	bold, err := Face(Bold, 24)
	if err != nil {
		t.Fatal(err)
	}
	defer bold.Close()

	const s = "samples = 1024"
	if font.MeasureString(bold, s) < font.MeasureString(regular, s) {
		t.Error("bold text should not be narrower than regular")
	}
}

func TestFaceErrors(t *testing.T) {
	if _, err := Face(Regular, 0); err == nil {
		t.Error("zero size should fail")
	}
	if _, err := Face(Weight(7), 12); err == nil {
		t.Error("unknown weight should fail")
	}
	if TTF(Weight(-1)) != nil {
		t.Error("TTF of unknown weight should be nil")
	}
	if len(TTF(Bold)) == 0 {
		t.Error("TTF(Bold) is empty")
	}
}
