package main

import (
	"context"
	"log"
	"os"

	"userinfo-service/internal"
)

func main() {
	ctx := context.Background()

	idx, err := internal.NewIndexer(ctx)
	if err != nil {
		log.Fatalf("init indexer failed: %v", err)
	}
	defer idx.Close()

	if err = idx.Run(ctx); err != nil {
		idx.Logger().Sugar().Errorf("indexer stopped with error: %v", err)
		idx.Close()
		os.Exit(1)
	}
}
