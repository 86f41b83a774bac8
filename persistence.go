package genetic_route

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

const DefaultBatchSize = 100

// PersistenceConfig locates the SQLite database runs are recorded in. An
// empty Path puts the file under the XDG data directory.
type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
	BatchSize     int      `toml:"batch_size"`
}

// Run is the summary of one evolution run. Populations themselves are never
// stored; a run can be inspected but not resumed.
type Run struct {
	ID              uint
	CreatedAt       time.Time
	FinishedAt      *time.Time
	Seed            int64
	NodeCount       int
	PathsCount      int
	PathLength      int
	GenerationCount int
	Start           int
	End             int
	Generations     int
	BestLength      float64
	BestPath        string
	Stats           []GenerationStat
}

// GenerationStat is one row of GenerationMetrics.
type GenerationStat struct {
	ID           uint
	RunID        uint `gorm:"index"`
	Generation   int
	MinLength    float64
	MeanLength   float64
	MaxLength    float64
	StdDevLength float64
	Diversity    float64
	BestLength   float64
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

func (c *PersistenceConfig) DSN() (string, error) {
	if len(c.Name) == 0 {
		return "", fmt.Errorf("Name of database must be defined")
	}

	dir := c.Path
	if len(dir) == 0 {
		file, err := xdg.DataFile(filepath.Join("genetic_route", c.Name))
		if err != nil {
			return "", fmt.Errorf("failed to resolve data directory: %w", err)
		}
		dir = filepath.Dir(file)
	}

	params := make([]string, 0, len(c.SQLitePragmas)+len(c.SQLiteOptions))
	for _, prag := range c.SQLitePragmas {
		params = append(params, "_pragma="+prag)
	}
	params = append(params, c.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(dir, c.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}
	return path.String(), nil
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	dsn, err := config.DSN()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dsn, err)
	}

	return OpenPersistence(config, db)
}

// OpenPersistence migrates the schema on an already opened database.
func OpenPersistence(config *PersistenceConfig, db *gorm.DB) (*Persistence, error) {
	if config == nil {
		config = &PersistenceConfig{}
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}

	db = db.Session(&gorm.Session{CreateBatchSize: config.BatchSize})

	p := &Persistence{Config: config, DB: db}
	if err := p.initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&Run{},
		&GenerationStat{},
	)
}

func (p *Persistence) Shutdown() error {
	sqldb, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return sqldb.Close()
}

// StartRun stores the run header and returns a Recorder that appends one
// GenerationStat per generation.
func (p *Persistence) StartRun(seed int64, config *EvolutionConfig) (*RunRecorder, error) {
	if config == nil || config.Graph == nil || config.Population == nil {
		return nil, fmt.Errorf("evolution config is incomplete: %w", ErrConfiguration)
	}

	run := &Run{
		Seed:            seed,
		NodeCount:       config.Graph.NodeCount,
		PathsCount:      config.Population.PathsCount,
		PathLength:      config.Population.PathLength,
		GenerationCount: config.GenerationCount,
		Start:           config.Population.Start,
		End:             config.Population.End,
	}
	if result := p.DB.Create(run); result.Error != nil {
		return nil, fmt.Errorf("failed to create run: %w", result.Error)
	}

	return &RunRecorder{persist: p, Run: run}, nil
}

func (p *Persistence) LoadRun(id uint) (*Run, error) {
	run := &Run{}
	result := p.DB.Preload("Stats", func(db *gorm.DB) *gorm.DB {
		return db.Order("generation")
	}).First(run, id)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, result.Error)
	}
	return run, nil
}

// ListRuns returns the most recent runs first, without their stats.
func (p *Persistence) ListRuns(limit int) ([]*Run, error) {
	var runs []*Run
	query := p.DB.Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&runs); result.Error != nil {
		return nil, fmt.Errorf("failed to list runs: %w", result.Error)
	}
	return runs, nil
}

// RunRecorder buffers GenerationStats and writes them in batches.
type RunRecorder struct {
	persist *Persistence
	Run     *Run
	batch   []*GenerationStat
}

func (r *RunRecorder) Record(generation int, p *Population, m *GenerationMetrics) error {
	r.batch = append(r.batch, &GenerationStat{
		RunID:        r.Run.ID,
		Generation:   generation,
		MinLength:    m.MinLength,
		MeanLength:   m.MeanLength,
		MaxLength:    m.MaxLength,
		StdDevLength: m.StdDevLength,
		Diversity:    m.Diversity,
		BestLength:   m.BestLength,
	})
	if len(r.batch) >= r.persist.Config.BatchSize {
		return r.flush()
	}
	return nil
}

func (r *RunRecorder) flush() error {
	if len(r.batch) == 0 {
		return nil
	}
	if result := r.persist.DB.Create(&r.batch); result.Error != nil {
		return fmt.Errorf("failed to save generation stats: %w", result.Error)
	}
	r.batch = r.batch[:0]
	return nil
}

// Finish writes pending stats and the run's outcome.
func (r *RunRecorder) Finish(result *RunResult) error {
	if err := r.flush(); err != nil {
		return err
	}

	now := time.Now()
	r.Run.FinishedAt = &now
	if result != nil {
		r.Run.Generations = result.Generations
		r.Run.BestLength = result.BestLength
		r.Run.BestPath = fmt.Sprint(result.BestPath)
	}
	if res := r.persist.DB.Save(r.Run); res.Error != nil {
		return fmt.Errorf("failed to finish run %d: %w", r.Run.ID, res.Error)
	}
	return nil
}
