package checkpointer

// nStep implements checkpointing every N iterations
type nStep struct {
	interval int
	object   Serializable // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each serialized object should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// file1.bin, file2.bin, ..., fileK.bin), then simply use the
	// static function FilenameEnumerator, which will return a function
	// that will enumerate filenames.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n iterations.
func NewNStep(n int, object Serializable,
	filename func() string) Checkpointer {
	if n <= 0 {
		panic("newNStep: checkpoint interval must be positive")
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves the checkpointed object if iteration is a multiple
// of the checkpointing interval
func (n *nStep) Checkpoint(iteration int) error {
	if iteration%n.interval == 0 {
		return Save(n.filename(), n.object)
	}
	return nil
}
