package vectorize

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	stop, err := Stopwords("en")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Java, Spring-Boot; SQL!",
			want: []string{"java", "spring", "boot", "sql"},
		},
		{
			name: "drops english stopwords",
			text: "experience with the development of systems",
			want: []string{"experience", "development", "systems"},
		},
		{
			name: "drops single characters",
			text: "c r go",
			want: []string{"go"},
		},
		{
			name: "keeps accented terms",
			text: "Implantação e manutenção",
			want: []string{"implantação", "manutenção"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, stop)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStopwords_portuguese(t *testing.T) {
	stop, err := Stopwords("pt")
	if err != nil {
		t.Fatal(err)
	}
	got := Tokenize("implantação e manutenção de software para as equipes", stop)
	want := []string{"implantação", "manutenção", "software", "equipes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStopwords_unknownLanguage(t *testing.T) {
	if _, err := Stopwords("de"); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestBuild_emptyVocabulary(t *testing.T) {
	stop, _ := Stopwords("en")

	tests := []struct {
		name string
		docs []string
	}{
		{"all empty documents", []string{"", "", ""}},
		{"only stopwords", []string{"the of and", "is was"}},
		{"no documents", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.docs, stop)
			if !errors.Is(err, ErrEmptyVocabulary) {
				t.Errorf("Build() error = %v, want ErrEmptyVocabulary", err)
			}
		})
	}
}

func TestBuild_selfSimilarityIsOne(t *testing.T) {
	stop, _ := Stopwords("en")
	vs, err := Build([]string{"java developer", "java developer", "python data"}, stop)
	if err != nil {
		t.Fatal(err)
	}
	got := Cosine(vs.Vector(0), vs.Vector(1))
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical documents: cosine = %v, want 1.0", got)
	}
}

func TestBuild_emptyDocumentScoresZero(t *testing.T) {
	stop, _ := Stopwords("en")
	vs, err := Build([]string{"java developer", ""}, stop)
	if err != nil {
		t.Fatal(err)
	}
	got := Cosine(vs.Vector(0), vs.Vector(1))
	if got != 0 {
		t.Errorf("empty document: cosine = %v, want exactly 0", got)
	}
	if math.IsNaN(got) {
		t.Error("cosine must never be NaN")
	}
}

func TestBuild_orderIndependence(t *testing.T) {
	stop, _ := Stopwords("en")
	a, err := Build([]string{"java backend", "python data", "java frontend"}, stop)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build([]string{"python data", "java frontend", "java backend"}, stop)
	if err != nil {
		t.Fatal(err)
	}
	// Same document gets the same vector regardless of corpus insertion order.
	if !reflect.DeepEqual(a.Vector(0), b.Vector(2)) {
		t.Error("vector for identical document differs with corpus order")
	}
	if !reflect.DeepEqual(a.Vector(1), b.Vector(0)) {
		t.Error("vector for identical document differs with corpus order")
	}
}

func TestBuild_rarerTermsWeighHigher(t *testing.T) {
	vs, err := Build([]string{"java kubernetes", "java spring", "java terraform"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// "kubernetes" appears in one document, "java" in all three; within doc 0
	// the rarer term must carry the larger weight.
	vec := vs.Vector(0)
	javaIdx, kubeIdx := vs.index["java"], vs.index["kubernetes"]
	if vec[kubeIdx] <= vec[javaIdx] {
		t.Errorf("rare term weight %v should exceed common term weight %v", vec[kubeIdx], vec[javaIdx])
	}
}

func TestTopTerms(t *testing.T) {
	vs, err := Build([]string{"java java java kubernetes spring", "python python pandas"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	top := vs.TopTerms(0, 2)
	if len(top) != 2 {
		t.Fatalf("TopTerms: got %v", top)
	}
	// "java" has tf 3 in doc 0, so it dominates despite a lower idf.
	if top[0] != "java" {
		t.Errorf("top term = %q, want java", top[0])
	}

	t.Run("excludes zero-weight terms", func(t *testing.T) {
		for _, term := range vs.TopTerms(0, 10) {
			if term == "python" || term == "pandas" {
				t.Errorf("term %q has zero weight in document 0", term)
			}
		}
	})

	t.Run("n larger than vocabulary", func(t *testing.T) {
		got := vs.TopTerms(1, 50)
		if len(got) != 2 {
			t.Errorf("got %v, want the 2 non-zero terms", got)
		}
	})

	t.Run("deterministic tie order", func(t *testing.T) {
		tied, err := Build([]string{"alpha beta", "gamma delta"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"alpha", "beta"}
		if got := tied.TopTerms(0, 2); !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v (lexicographic tie-break)", got, want)
		}
	})

	t.Run("invalid index", func(t *testing.T) {
		if got := vs.TopTerms(7, 3); got != nil {
			t.Errorf("got %v for out-of-range document", got)
		}
	})
}

func TestCosine_bounds(t *testing.T) {
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("nil vectors: got %v", got)
	}
	if got := Cosine([]float64{1, 0}, []float64{1}); got != 0 {
		t.Errorf("length mismatch: got %v", got)
	}
	// Float drift above 1 is clamped.
	if got := Cosine([]float64{1.0000001, 0}, []float64{1.0000001, 0}); got != 1 {
		t.Errorf("clamp: got %v", got)
	}
}
