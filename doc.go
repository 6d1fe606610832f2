// Package docsearch is an embeddable hybrid document search engine.
//
// It ranks a small in-memory corpus by blending precomputed document
// embeddings with keyword relevance, and falls back to keyword-only ranking
// whenever the semantic path is unavailable: no index file, no embedder, a
// provider failure or a dimension mismatch.
//
//	engine, err := docsearch.New(
//	    docsearch.WithContentFile("data/content.yaml"),
//	    docsearch.WithIndexFile("data/embeddings.json"),
//	    docsearch.WithEmbedder(myEmbedder),
//	)
//	resp, err := engine.Search(ctx, "distributed systems", 5)
//	fmt.Println(resp.Method) // "hybrid" or "keyword-only"
package docsearch
