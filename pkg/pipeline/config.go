package pipeline

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/doclens/doclens/pkg/logging"
)

// PipelineConfig holds configuration shared by the batch stages
type PipelineConfig struct {
	// Logging configuration
	Logging *logging.LogConfig `json:"logging"`

	// Scraper configuration
	Scraper *ScraperConfig `json:"scraper"`

	// Text analysis configuration
	Analysis *AnalysisConfig `json:"analysis"`

	// Browser data / geocoding configuration
	Browser *BrowserConfig `json:"browser"`

	// Server configuration
	Server *ServerConfig `json:"server"`

	// Data paths
	DataPaths *DataPathsConfig `json:"data_paths"`
}

// ScraperConfig holds scraping and download settings
type ScraperConfig struct {
	BaseURL         string        `json:"base_url"`
	UserAgent       string        `json:"user_agent"`
	FetchTimeout    time.Duration `json:"fetch_timeout"`
	DownloadTimeout time.Duration `json:"download_timeout"`
	MaxRetries      int           `json:"max_retries"`
	RetryDelay      time.Duration `json:"retry_delay"`
	RequestsPerSec  float64       `json:"requests_per_sec"`
	MaxDataSets     int           `json:"max_data_sets"`
	RespectRobots   bool          `json:"respect_robots"`
}

// AnalysisConfig holds settings for the NER, network, and sentiment stages
type AnalysisConfig struct {
	// Name extraction
	ChunkSize     int `json:"chunk_size"`      // chars per NER chunk
	MinNameLength int `json:"min_name_length"` // shortest accepted person name
	MaxNameLength int `json:"max_name_length"` // longest accepted person name

	// Network thresholds
	MinAppearances int `json:"min_appearances"` // file appearances to keep a person
	MinEdgeWeight  int `json:"min_edge_weight"` // co-occurrences to keep an edge

	// Sentiment chunking
	SentimentChunkWords int `json:"sentiment_chunk_words"`
	SentimentMaxChunks  int `json:"sentiment_max_chunks"`

	// Concurrency
	MaxWorkers int `json:"max_workers"`
}

// BrowserConfig holds browser-data preprocessing settings
type BrowserConfig struct {
	MaxQuotesPerPerson    int     `json:"max_quotes_per_person"`
	MaxDocumentsPerPerson int     `json:"max_documents_per_person"`
	MaxAssociates         int     `json:"max_associates"`
	MaxLinkedEntities     int     `json:"max_linked_entities"`
	MinLinkCount          int     `json:"min_link_count"`
	SkipGeocoding         bool    `json:"skip_geocoding"`
	GeocodeRequestsPerSec float64 `json:"geocode_requests_per_sec"`
}

// ServerConfig holds server settings
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	StaticRoot   string        `json:"static_root"`
}

// DataPathsConfig holds the on-disk layout the stages communicate through
type DataPathsConfig struct {
	// Corpus root holding downloaded PDFs and sidecar .txt files
	CorpusDir string `json:"corpus_dir"`

	// Stage outputs
	URLManifestJSON string `json:"url_manifest_json"`
	URLManifestCSV  string `json:"url_manifest_csv"`
	QualityCSV      string `json:"quality_csv"`
	NamesJSON       string `json:"names_json"`
	EdgesCSV        string `json:"edges_csv"`
	NodesCSV        string `json:"nodes_csv"`
	NetworkHTML     string `json:"network_html"`
	NetworkTopHTML  string `json:"network_top_html"`
	SentimentCSV    string `json:"sentiment_csv"`

	// Inputs produced by companion pipelines
	AliasCSV       string `json:"alias_csv"`
	ProfilesJSON   string `json:"profiles_json"`
	QuotesCSV      string `json:"quotes_csv"`
	CrossEntityDir string `json:"cross_entity_dir"`

	// Browser data output
	BrowserDataDir string `json:"browser_data_dir"`
	GeocodeCache   string `json:"geocode_cache"`
}

// DefaultPipelineConfig returns a complete default configuration
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		Logging: logging.DefaultLogConfig(),

		Scraper: &ScraperConfig{
			BaseURL:         EnvString("SCRAPE_BASE_URL", "https://www.justice.gov"),
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			FetchTimeout:    60 * time.Second,
			DownloadTimeout: 120 * time.Second,
			MaxRetries:      3,
			RetryDelay:      2 * time.Second,
			RequestsPerSec:  0.5,
			MaxDataSets:     12,
			RespectRobots:   true,
		},

		Analysis: &AnalysisConfig{
			ChunkSize:           100000,
			MinNameLength:       5,
			MaxNameLength:       50,
			MinAppearances:      5,
			MinEdgeWeight:       3,
			SentimentChunkWords: 1000,
			SentimentMaxChunks:  100,
			MaxWorkers:          runtime.NumCPU(),
		},

		Browser: &BrowserConfig{
			MaxQuotesPerPerson:    100,
			MaxDocumentsPerPerson: 200,
			MaxAssociates:         50,
			MaxLinkedEntities:     30,
			MinLinkCount:          3,
			SkipGeocoding:         EnvBool("SKIP_GEOCODING", false),
			GeocodeRequestsPerSec: 1.0,
		},

		Server: &ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			StaticRoot:   ".",
		},

		DataPaths: &DataPathsConfig{
			CorpusDir:       "./corpus_pdfs",
			URLManifestJSON: "./corpus_pdfs/pdf_urls.json",
			URLManifestCSV:  "./corpus_pdfs/pdf_urls.csv",
			QualityCSV:      "./txt_analysis_results.csv",
			NamesJSON:       "./extracted_names.json",
			EdgesCSV:        "./network_edges.csv",
			NodesCSV:        "./network_nodes.csv",
			NetworkHTML:     "./network_map.html",
			NetworkTopHTML:  "./network_map_top100.html",
			SentimentCSV:    "./sentiment_results.csv",
			AliasCSV:        "./alias_resolution_output/alias_mapping.csv",
			ProfilesJSON:    "./entity_profiles_output/all_profiles.json",
			QuotesCSV:       "./quote_attribution_output/all_quotes.csv",
			CrossEntityDir:  "./cross_entity_output",
			BrowserDataDir:  "./data",
			GeocodeCache:    "./geocode_cache.json",
		},
	}
}

// DevelopmentPipelineConfig returns a configuration for local iteration
func DevelopmentPipelineConfig() *PipelineConfig {
	config := DefaultPipelineConfig()

	config.Logging.Level = "debug"
	config.Analysis.MaxWorkers = 2
	config.Scraper.RequestsPerSec = 2.0

	return config
}

// EnvString retrieves an environment variable with a default value
func EnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// EnvBool retrieves a boolean environment variable with a default value
func EnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// EnvInt retrieves an integer environment variable with a default value
func EnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
