package config

// Docker-compose defaults for APP_ENV=local when the env vars are unset.
const localMinioEndpoint = "minio:9000"
