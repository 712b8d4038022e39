package pdftext

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"carriage returns", "first line\r\nsecond line", "first line\n\nsecond line"},
		{"page of furniture", "before Page 3 of 12 after", "before after"},
		{"bare page number", "before\nPage 7\nafter", "before\n\nafter"},
		{"blank line runs", "a\n\n\n\nb", "a\n\nb"},
		{"space runs", "a  \t  b", "a b"},
		{"trim", "  body  ", "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "Clause one.\r\n\r\nPage 1 of 9\r\n\r\nClause\t two  continues."
	once := Normalize(in)
	if twice := Normalize(once); twice != once {
		t.Errorf("second pass changed output:\n once=%q\ntwice=%q", once, twice)
	}
}
