package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Presenter names accepted by PRESENTER.
const (
	PresenterWindow = "window"
	PresenterFile   = "file"
	PresenterWeb    = "web"
)

type Config struct {
	ImageDirectory   string
	CarCascadePath   string
	StopCascadePath  string
	MinObjectSize    int     // Minimalny bok wykrytego obiektu w pikselach
	ScaleFactor      float64 // Krok skali piramidy kaskady
	MinNeighbors     int
	Lanes            int     // Na ile pasów dzielimy szerokość obrazu
	PathLane         int     // Indeks pasa, którym jedziemy (0-based)
	MinWidthRatio    float64 // Udział szerokości obrazu, od którego auto jest "duże"
	Presenter        string
	OutputDirectory  string
	Port             int
	JournalPath      string // Pusty = dziennik wyłączony
	LogDirectory     string // Pusty = logi tylko na konsolę
	Seed             int64  // 0 = losowe ziarno
	FaceImagePath    string
	FaceCascadePath  string
	FaceMinNeighbors int
	TuningFile       string
}

// Tuning is the subset of Config that may be overridden from a YAML file.
type Tuning struct {
	MinObjectSize *int     `yaml:"min_object_size"`
	ScaleFactor   *float64 `yaml:"scale_factor"`
	MinNeighbors  *int     `yaml:"min_neighbors"`
	Lanes         *int     `yaml:"lanes"`
	PathLane      *int     `yaml:"path_lane"`
	MinWidthRatio *float64 `yaml:"min_width_ratio"`
}

// Load reads an optional .env file, then the environment, then the optional
// tuning file named by TUNING_FILE.
func Load() (*Config, error) {
	// Brak pliku .env nie jest błędem
	_ = godotenv.Load()

	cfg := &Config{
		ImageDirectory:   getEnv("IMAGE_DIR", filepath.Join(".", "road_images")),
		CarCascadePath:   getEnv("CAR_CASCADE", "haarcascade_cars.xml"),
		StopCascadePath:  getEnv("STOP_CASCADE", "haarcascade_stopsign.xml"),
		MinObjectSize:    getEnvAsInt("MIN_OBJECT_SIZE", 20),
		ScaleFactor:      getEnvAsFloat("SCALE_FACTOR", 1.1),
		MinNeighbors:     getEnvAsInt("MIN_NEIGHBORS", 3),
		Lanes:            getEnvAsInt("LANES", 3),
		PathLane:         getEnvAsInt("PATH_LANE", 1),
		MinWidthRatio:    getEnvAsFloat("MIN_WIDTH_RATIO", 0.15),
		Presenter:        getEnv("PRESENTER", PresenterWindow),
		OutputDirectory:  getEnv("OUTPUT_DIR", filepath.Join(".", "output")),
		Port:             getEnvAsInt("PORT", 8080),
		JournalPath:      getEnv("JOURNAL_DB", ""),
		LogDirectory:     getEnv("LOG_DIR", ""),
		Seed:             getEnvAsInt64("SEED", 0),
		FaceImagePath:    getEnv("FACE_IMAGE", "people1.jpg"),
		FaceCascadePath:  getEnv("FACE_CASCADE", "haarcascade_frontalface_default.xml"),
		FaceMinNeighbors: getEnvAsInt("FACE_MIN_NEIGHBORS", 5),
		TuningFile:       getEnv("TUNING_FILE", ""),
	}

	if cfg.TuningFile != "" {
		if err := cfg.ApplyTuningFile(cfg.TuningFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyTuningFile overlays the values present in a YAML tuning file.
func (c *Config) ApplyTuningFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tuning file: %w", err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}

	if t.MinObjectSize != nil {
		c.MinObjectSize = *t.MinObjectSize
	}
	if t.ScaleFactor != nil {
		c.ScaleFactor = *t.ScaleFactor
	}
	if t.MinNeighbors != nil {
		c.MinNeighbors = *t.MinNeighbors
	}
	if t.Lanes != nil {
		c.Lanes = *t.Lanes
	}
	if t.PathLane != nil {
		c.PathLane = *t.PathLane
	}
	if t.MinWidthRatio != nil {
		c.MinWidthRatio = *t.MinWidthRatio
	}
	return nil
}

// Validate checks values that would otherwise fail deep inside the pipeline.
func (c *Config) Validate() error {
	switch c.Presenter {
	case PresenterWindow, PresenterFile, PresenterWeb:
	default:
		return fmt.Errorf("unknown presenter %q", c.Presenter)
	}
	if c.MinObjectSize < 0 {
		return fmt.Errorf("min object size must not be negative, got %d", c.MinObjectSize)
	}
	if c.ScaleFactor <= 1.0 {
		return fmt.Errorf("scale factor must be greater than 1, got %v", c.ScaleFactor)
	}
	if c.MinNeighbors < 0 {
		return fmt.Errorf("min neighbors must not be negative, got %d", c.MinNeighbors)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
