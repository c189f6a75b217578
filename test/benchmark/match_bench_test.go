package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/jessiysantos/fase5/internal/embedding"
	"github.com/jessiysantos/fase5/internal/scoring"
	"github.com/jessiysantos/fase5/internal/vectorize"
)

func syntheticDocs(n int) []string {
	titles := []string{
		"desenvolvedor java spring boot microservices",
		"engenheiro de dados python spark airflow",
		"analista financeiro contabilidade sap",
		"cientista de dados machine learning tensorflow",
		"engenheiro devops kubernetes terraform golang",
	}
	docs := make([]string, n)
	for i := range docs {
		docs[i] = fmt.Sprintf("%s perfil %d", titles[i%len(titles)], i)
	}
	return docs
}

func BenchmarkVectorSpaceBuild(b *testing.B) {
	docs := syntheticDocs(1000)
	stop, err := vectorize.Stopwords("pt")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := vectorize.Build(docs, stop); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexicalScore(b *testing.B) {
	docs := syntheticDocs(1000)
	scorer, err := scoring.NewLexicalScorer("pt")
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := scorer.Score(ctx, "desenvolvedor java senior", docs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmbeddingScore(b *testing.B) {
	docs := syntheticDocs(200)
	scorer := scoring.NewEmbeddingScorer(embedding.NewHashEncoder(384))
	defer scorer.Close()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := scorer.Score(ctx, "desenvolvedor java senior", docs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTopTerms(b *testing.B) {
	docs := syntheticDocs(500)
	stop, err := vectorize.Stopwords("pt")
	if err != nil {
		b.Fatal(err)
	}
	vs, err := vectorize.Build(docs, stop)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = vs.TopTerms(i%vs.Len(), 5)
	}
}
