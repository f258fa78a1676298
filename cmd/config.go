package cmd

// Config carries the environment-driven settings for the delivery
// lifecycle engine.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SlotModelPath   string
	SlotDatasetPath string
	ProofDir        string

	CodeLength        int
	DispatchSchedule  string
	DispatchBatchSize int
}
