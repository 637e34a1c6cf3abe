package jsonfile

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/database/dberr"
)

// JSONFile persists all profiles as a single JSON object mapping
// user IDs to profiles, the whole file is rewritten on every put.
type JSONFile struct {
	mu       sync.Mutex
	path     string
	profiles map[string]models.UserAudioProfile
}

var _ database.Database = (*JSONFile)(nil)

// InitJSONFile loads the settings file at path. A missing or
// unreadable file is never fatal, the store starts empty instead.
func InitJSONFile(path string) (*JSONFile, error) {
	j := &JSONFile{
		path:     path,
		profiles: map[string]models.UserAudioProfile{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.With(err).Warn("Failed reading settings file, starting empty", "Path", path)
		}
		return j, nil
	}

	if err = json.Unmarshal(data, &j.profiles); err != nil {
		log.With(err).Warn("Failed parsing settings file, starting empty", "Path", path)
		j.profiles = map[string]models.UserAudioProfile{}
	}

	return j, nil
}

func (j *JSONFile) Close() error {
	return nil
}

func (j *JSONFile) GetProfile(userID string) (models.UserAudioProfile, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	p, ok := j.profiles[userID]
	if !ok {
		return models.UserAudioProfile{}, dberr.ErrNotFound
	}

	return p, nil
}

func (j *JSONFile) SetProfile(userID string, p models.UserAudioProfile) error {
	if err := database.ValidateProfile(p); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.profiles[userID] = p

	return j.persist()
}

func (j *JSONFile) GetProfiles() (map[string]models.UserAudioProfile, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make(map[string]models.UserAudioProfile, len(j.profiles))
	for k, v := range j.profiles {
		out[k] = v
	}

	return out, nil
}

func (j *JSONFile) AddPlay(userID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	p, ok := j.profiles[userID]
	if !ok {
		p = models.DefaultProfile()
	}
	p.Plays++
	j.profiles[userID] = p

	return j.persist()
}

// persist rewrites the whole settings file. Callers must hold mu.
// The write goes through a temp file plus rename so a crash mid-write
// never truncates the previous state.
func (j *JSONFile) persist() error {
	data, err := json.Marshal(j.profiles)
	if err != nil {
		return err
	}

	tmp := j.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmp, j.path)
}
