package bridge

// Config holds the registry limits read from configuration.
type Config struct {
	// MaxSessions caps live sessions; zero means unlimited.
	MaxSessions int `mapstructure:"max_sessions" default:"0"`
	// MaxSceneVertices caps the vertices of a published scene; zero means unlimited.
	MaxSceneVertices int `mapstructure:"max_scene_vertices" default:"0"`
	// HistoryLimit is the default number of records returned by history queries.
	HistoryLimit int `mapstructure:"history_limit" default:"50"`
}
