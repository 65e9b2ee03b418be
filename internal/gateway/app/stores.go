package app

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"politix/internal/gateway/config"
	analysisrepo "politix/internal/gateway/repository/analysis"
	artifactrepo "politix/internal/gateway/repository/artifact"
	"politix/internal/gateway/repository/clientstate"
	topicrepo "politix/internal/gateway/repository/topic"
)

type gatewayStores struct {
	topics   topicrepo.Store
	analyses analysisrepo.Store
	artifact artifactrepo.Store
	state    *clientstate.Store
}

func initStores(cfg *config.Config) (*gatewayStores, error) {
	s3Factory := newArtifactS3StoreFactory(cfg)

	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		return initPostgresStores(dsn, cfg, s3Factory)
	}
	return initInMemoryStores(cfg, s3Factory)
}

func newArtifactS3StoreFactory(cfg *config.Config) func() (artifactrepo.Store, error) {
	return func() (artifactrepo.Store, error) {
		s3Cfg := artifactrepo.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		}
		s3Store, err := artifactrepo.NewS3Store(s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize artifact s3 store: %w", err)
		}
		log.Printf("artifact store: s3 bucket=%s endpoint=%s", s3Cfg.Bucket, s3Cfg.Endpoint)
		return s3Store, nil
	}
}

func initPostgresStores(dsn string, cfg *config.Config, s3Factory func() (artifactrepo.Store, error)) (*gatewayStores, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	topicStore, err := topicrepo.NewPostgresStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize topic store: %w", err)
	}

	stores := &gatewayStores{
		topics:   topicStore,
		analyses: analysisrepo.NewPostgresStore(db),
		artifact: artifactrepo.NewPostgresStore(db),
		state:    clientstate.NewPostgres(db),
	}
	artifactStore, err := chooseArtifactStore(cfg, stores.artifact, "postgres", s3Factory)
	if err != nil {
		return nil, err
	}
	stores.artifact = artifactStore
	return stores, nil
}

func initInMemoryStores(cfg *config.Config, s3Factory func() (artifactrepo.Store, error)) (*gatewayStores, error) {
	artifactStore, err := chooseArtifactStore(cfg, artifactrepo.NewMemoryStore(), "in-memory", s3Factory)
	if err != nil {
		return nil, err
	}
	return &gatewayStores{
		topics:   topicrepo.NewMemoryStore(),
		analyses: analysisrepo.NewMemoryStore(),
		artifact: artifactStore,
		state:    clientstate.NewFromEnv(nil, cfg.StatePath),
	}, nil
}

func chooseArtifactStore(
	cfg *config.Config,
	fallback artifactrepo.Store,
	fallbackLabel string,
	s3Factory func() (artifactrepo.Store, error),
) (artifactrepo.Store, error) {
	if cfg.Artifact.CanUseS3() {
		return s3Factory()
	}
	if cfg.Artifact.Enabled {
		log.Printf("artifact store: using %s fallback (s3 config incomplete)", fallbackLabel)
	}
	if fallback == nil {
		return nil, fmt.Errorf("artifact origin store is nil")
	}
	return fallback, nil
}
