package guestloader

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"berberis/berrors"
	"berberis/blog"
	"berberis/trampoline"
)

var log = blog.New("guestloader")

// Well-known vDSO entry points guest_loader.cc's InitializeVdso wires a
// host callback onto.
const (
	vdsoTraceSymbol           = "native_bridge_trace"
	vdsoInterceptSymbolSymbol = "native_bridge_intercept_symbol"
	vdsoPostInitSymbol        = "native_bridge_post_init"
	vdsoCallGuestSymbol       = "native_bridge_call_guest"
	vdsoConfigStaticTlsSymbol = "__native_bridge_config_static_tls"
	vdsoGetHostPthreadSymbol  = "__native_bridge_get_host_pthread"
)

// GuestLoader owns the three ELF images backing one guest process:
// its main executable, its vDSO, and (for dynamic executables) its
// dynamic linker, plus the resolved linker callback table and the
// trampoline bindings installed on the vDSO's well-known symbols.
type GuestLoader struct {
	MainExecutablePath string

	Executable *LoadedELF
	VDSO       *LoadedELF
	Linker     *LoadedELF // nil for a static executable

	IsStaticExecutable bool
	LinkerCallbacks    LinkerCallbacks

	CallGuestAddr trampoline.GuestAddr
}

var (
	instanceMu sync.Mutex
	instance   *GuestLoader
)

// CreateInstance loads mainExecutablePath, vdsoPath, and (if
// mainExecutablePath is a dynamic executable) loaderPath, resolves the
// linker callback table, and installs the vDSO's trampolines into
// registry. It may be called exactly once per process, mirroring the
// original's single g_guest_loader_instance.
//
// The main executable and vDSO loads are independent I/O, so they run
// concurrently via an errgroup rather than guest_loader.cc's sequential
// TinyLoader::LoadFromFile calls; the linker is loaded afterwards, once
// the executable is known to be dynamic.
func CreateInstance(mainExecutablePath, vdsoPath, loaderPath string, registry *trampoline.Registry) (*GuestLoader, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	berrors.CheckFatal(instance == nil, "guestloader: CreateInstance called twice")

	log.Infof("CreateInstance(main_executable=%q, vdso=%q, loader=%q)", mainExecutablePath, vdsoPath, loaderPath)

	loader := &GuestLoader{MainExecutablePath: mainExecutablePath}

	var g errgroup.Group
	g.Go(func() error {
		exe, err := LoadELF(mainExecutablePath)
		if err != nil {
			return err
		}
		loader.Executable = exe
		return nil
	})
	g.Go(func() error {
		vdso, err := LoadELF(vdsoPath)
		if err != nil {
			return err
		}
		loader.VDSO = vdso
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loader.IsStaticExecutable = loader.Executable.IsStaticExecutable()

	if loader.IsStaticExecutable {
		if loader.Executable.IsSharedObject() {
			log.Debugf("pretend running linker as main executable")
			if missing, ok := InitializeLinkerCallbacks(&loader.LinkerCallbacks, loader.Executable); !ok {
				log.Warnf("failed to init main executable as linker (missing symbol %q), running as is", missing)
			}
		}
	} else {
		linker, err := LoadELF(loaderPath)
		if err != nil {
			return nil, err
		}
		loader.Linker = linker
		if missing, ok := InitializeLinkerCallbacks(&loader.LinkerCallbacks, linker); !ok {
			return nil, fmt.Errorf("guestloader: couldn't find %q symbol in linker", missing)
		}
	}

	if err := loader.installVdsoTrampolines(registry); err != nil {
		return nil, err
	}

	instance = loader
	return instance, nil
}

// GetInstance returns the process-wide loader created by CreateInstance.
// It is fatal to call before CreateInstance has succeeded.
func GetInstance() *GuestLoader {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	berrors.CheckFatal(instance != nil, "guestloader: GetInstance called before CreateInstance")
	return instance
}

// EntryPoint returns the guest address execution should start at: the
// linker's entry point for a dynamic executable, the executable's own
// entry point otherwise.
func (l *GuestLoader) EntryPoint() uint64 {
	if l.Linker != nil {
		return l.Linker.EntryPoint()
	}
	return l.Executable.EntryPoint()
}

func (l *GuestLoader) installVdsoTrampolines(registry *trampoline.Registry) error {
	bindings := []struct {
		symbol string
		fn     trampoline.Fn
	}{
		{vdsoTraceSymbol, traceCallback},
		{vdsoInterceptSymbolSymbol, interceptGuestSymbolCallback},
		{vdsoPostInitSymbol, postInitCallback},
		{vdsoConfigStaticTlsSymbol, configStaticTlsCallback},
		{vdsoGetHostPthreadSymbol, getHostPthreadCallback},
	}
	for _, b := range bindings {
		addr, ok := l.VDSO.FindSymbol(b.symbol)
		if !ok {
			return fmt.Errorf("guestloader: couldn't find %q symbol in vdso", b.symbol)
		}
		registry.Install(trampoline.GuestAddr(addr), trampoline.Entry{
			Trampoline: b.fn,
			DebugName:  b.symbol,
			IsHostFunc: true,
		})
	}

	callGuestAddr, ok := l.VDSO.FindSymbol(vdsoCallGuestSymbol)
	if !ok {
		return fmt.Errorf("guestloader: couldn't find %q symbol in vdso", vdsoCallGuestSymbol)
	}
	l.CallGuestAddr = trampoline.GuestAddr(callGuestAddr)

	return nil
}

// traceCallback, interceptGuestSymbolCallback, postInitCallback,
// configStaticTlsCallback, and getHostPthreadCallback stand in for
// guest_loader.cc's TraceCallback/InterceptGuestSymbolCallback/
// PostInitCallback/ConfigStaticTlsCallback/GetHostPthreadCallback: each
// receives the thunk and the calling thread's state and only logs the
// call at debug level; none of them marshals arguments or performs the
// matching host action.
func traceCallback(thunk any, thread any) {
	log.Debugf("guest trace call")
}

func interceptGuestSymbolCallback(thunk any, thread any) {
	log.Debugf("guest requested symbol interception")
}

func postInitCallback(thunk any, thread any) {
	log.Debugf("guest post-init callback")
}

func configStaticTlsCallback(thunk any, thread any) {
	log.Debugf("guest static TLS configuration callback")
}

func getHostPthreadCallback(thunk any, thread any) {
	log.Debugf("guest requested host pthread handle")
}
