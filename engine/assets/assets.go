package assets

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rabbitview/engine/core"
)

type AssetInfo struct {
	Path       string
	Type       ResourceType
	LastLoaded time.Time
}

// AssetManager routes loads to per-type loaders and watches asset
// directories for changes so the engine can reload a texture that was
// edited while the viewer is running.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan string, 16),
		done:     make(chan struct{}),
	}, nil
}

// Initialize starts the watch goroutine and begins watching the given
// directories (non-recursively; the viewer's assets live flat).
func (am *AssetManager) Initialize(dirs ...string) error {
	go am.start()

	for _, dir := range dirs {
		if err := am.add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return nil
}

func (am *AssetManager) add(name string) error {
	am.mutex.RLock()
	closed := am.isClosed
	am.mutex.RUnlock()
	if closed {
		return errors.New("asset manager already closed")
	}
	return am.fsnotify.Add(name)
}

// RegisterLoader registers the loader used for one asset type.
func (am *AssetManager) RegisterLoader(assetType ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// LoadAsset loads (or reloads) the asset at path with the loader registered
// for its type.
func (am *AssetManager) LoadAsset(path string, resourceType ResourceType, params interface{}) (*Resource, error) {
	am.mutex.RLock()
	loader, ok := am.loaders[resourceType]
	am.mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("asset type %d: %w", resourceType, core.ErrNoLoader)
	}

	resource, err := loader.Load(path, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	return resource, nil
}

func (am *AssetManager) UnloadAsset(resource *Resource) error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, resource.FullPath)
	if loader, ok := am.loaders[resource.Type]; ok {
		return loader.Unload(resource)
	}
	return nil
}

// Changes delivers paths of previously loaded assets whose files were
// written since. The channel is buffered and never blocks the watcher.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

func (am *AssetManager) start() {
	for {
		select {
		case <-am.done:
			return
		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogWarn("asset watcher: %v", err)
		case event, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			am.mutex.RLock()
			_, tracked := am.assets[event.Name]
			am.mutex.RUnlock()
			if !tracked {
				continue
			}
			select {
			case am.changes <- event.Name:
			default:
				// Reload already pending; drop the duplicate.
			}
		}
	}
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return am.fsnotify.Close()
}
