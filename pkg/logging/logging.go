package logging

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.elastic.co/ecszerolog"
)

var setupOnce sync.Once

// ElasticsearchWriter ships each log event to Elasticsearch as a document.
type ElasticsearchWriter struct {
	URL string
}

func (ew ElasticsearchWriter) Write(p []byte) (n int, err error) {
	resp, err := http.Post(
		ew.URL+"/_doc",
		"application/json",
		bytes.NewBuffer(p),
	)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("elasticsearch returned %d", resp.StatusCode)
	}

	return len(p), nil
}

// Setup configures the global logger. With an Elasticsearch URL, events go
// out in ECS format to Elasticsearch and pretty-printed to the console;
// without one, console only. Safe to call more than once.
func Setup(elasticsearchURL, app string) {
	setupOnce.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)

		consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}

		if elasticsearchURL == "" {
			log.Logger = zerolog.New(consoleWriter).With().Str("app", app).
				Timestamp().Logger()
			return
		}

		ecsLogger := ecszerolog.New(&ElasticsearchWriter{
			URL: elasticsearchURL + "/" + app,
		})

		multi := zerolog.MultiLevelWriter(
			ecsLogger,
			consoleWriter,
		)

		log.Logger = zerolog.New(multi).With().Str("app", app).
			Timestamp().Logger()
	})
}
