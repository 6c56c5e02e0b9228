package bootstrap

import "github.com/RichTeaMan/timer/config"

// Config is the constraint on App's config type parameter. Embedding
// config.ServiceConfig is enough to satisfy it.
type Config = config.Config
