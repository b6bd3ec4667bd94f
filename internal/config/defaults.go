package config

const (
	defaultWorkDir        = "~/.local/share/scribe/work"
	defaultOutputDir      = "~/.local/share/scribe/output"
	defaultLogDir         = "~/.local/share/scribe/logs"
	defaultHistoryDB      = "~/.local/share/scribe/history.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultSplits         = 5
	defaultConcurrency    = 1
	defaultBatchWorkers   = 1
	defaultBackendKind    = "openai"
	defaultEndpoint       = "https://api.openai.com/v1/audio/transcriptions"
	defaultModel          = "whisper-1"
	defaultMaxAttempts    = 10
	defaultRetryDelay     = 15
	defaultBackendTimeout = 600
	defaultNtfyTimeout    = 10
	defaultFFmpeg         = "ffmpeg"
	defaultFFprobe        = "ffprobe"
	defaultYTDLP          = "yt-dlp"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Pipeline: Pipeline{
			Splits:       defaultSplits,
			Concurrency:  defaultConcurrency,
			BatchWorkers: defaultBatchWorkers,
		},
		Backend: Backend{
			Kind:           defaultBackendKind,
			Endpoint:       defaultEndpoint,
			Model:          defaultModel,
			MaxAttempts:    defaultMaxAttempts,
			RetryDelay:     defaultRetryDelay,
			TimeoutSeconds: defaultBackendTimeout,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
			YTDLP:   defaultYTDLP,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
