package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/wardrobe/internal/model"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	textBytes = []byte("just some notes about my closet\n")
)

func pngFile(name string) model.PendingFile {
	return model.PendingFile{Name: name, Data: pngBytes}
}

// fakeService records calls and returns scripted results.
type fakeService struct {
	classifyErrs map[string]error
	results      map[string]*model.ClassificationResult
	saveErr      error
	itemErrs     map[int64]error
	uploads      []string
	confirms     []model.ConfirmedRecord
	favorites    []int64
	archives     []int64
	deletes      []int64
	mu           sync.Mutex
	nextID       int64
}

func newFakeService() *fakeService {
	return &fakeService{
		classifyErrs: make(map[string]error),
		results:      make(map[string]*model.ClassificationResult),
		itemErrs:     make(map[int64]error),
	}
}

func (f *fakeService) Upload(_ context.Context, file model.PendingFile, _ bool) (*model.ClassificationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, file.Name)
	if err := f.classifyErrs[file.Name]; err != nil {
		return nil, err
	}
	if r, ok := f.results[file.Name]; ok {
		return r, nil
	}
	return &model.ClassificationResult{
		Filename:     file.Name,
		OriginalPath: "data/images/" + file.Name,
		Category:     "上衣",
		Color:        "白色",
		Style:        model.StringList{"简约"},
		Season:       model.StringList{"夏"},
	}, nil
}

func (f *fakeService) Confirm(_ context.Context, record model.ConfirmedRecord) (*model.Garment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirms = append(f.confirms, record)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.nextID++
	return &model.Garment{ID: f.nextID, Filename: record.Filename, Category: record.Category}, nil
}

func (f *fakeService) ToggleFavorite(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favorites = append(f.favorites, id)
	return true, f.itemErrs[id]
}

func (f *fakeService) ToggleArchive(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archives = append(f.archives, id)
	return true, f.itemErrs[id]
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.itemErrs[id]
}

var errService = errors.New("classifier timed out")

// recordingNotifier keeps every notice.
type recordingNotifier struct {
	infos     []string
	successes []string
	errors    []string
	mu        sync.Mutex
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}
