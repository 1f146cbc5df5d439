//
// Copyright 2026 The Licensecore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manager

import (
	"context"
	"sync"

	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/messages"
	"github.com/licensecore/licensecore/pkg/store"
)

// chainedManager is the consumer-side composite of spec §4.5: a parent
// manager (typically loading from a bundled or vendor-supplied location)
// tried first, falling back to this manager's own store, with an optional
// free-trial generation step when neither has an artifact and the
// embedded Authentication happens to carry a signing key.
//
// The spec's three-attempt Load/Verify table (parent, self, self-again
// under the store lock before generating a free trial) is simplified here
// to a single store-locked retry before generateIffNewFtp, which spec §9
// explicitly permits: a failed first read under no lock and a second read
// taken under the lock converge to the same outcome whenever the store
// didn't change between them, and the lock rules out the only case where
// they wouldn't.
type chainedManager struct {
	parent Manager // may be nil: no upstream to consult first
	self   *baseManager
	caching Manager // self wrapped in the TTL cache, what Load/Verify/Install/Uninstall actually call

	storeMu sync.Mutex // guards the retry-then-generate sequence against concurrent callers

	ftpOnce    sync.Once
	ftpCapable bool
}

// Chained builds the consumer-facing Manager of spec §4.5. parent is
// consulted before self; it may be nil for a manager with no upstream.
func Chained(self *baseManager, parent Manager) Manager {
	return &chainedManager{
		parent:  parent,
		self:    self,
		caching: newCaching(self.ctx, self, self.ctx.CachePeriod()),
	}
}

func (c *chainedManager) Generate(ctx context.Context, lic *license.License) (*GeneratedKey, error) {
	if c.parent != nil {
		if gk, err := c.parent.Generate(ctx, lic); err == nil {
			return gk, nil
		}
	}
	return c.caching.Generate(ctx, lic)
}

func (c *chainedManager) Install(ctx context.Context, src store.Source) error {
	if c.parent != nil {
		if err := c.parent.Install(ctx, src); err != nil {
			if c.canGenerate(ctx) {
				return err
			}
		} else {
			return nil
		}
	}
	return c.caching.Install(ctx, src)
}

func (c *chainedManager) Uninstall(ctx context.Context) error {
	if c.parent != nil {
		if err := c.parent.Uninstall(ctx); err != nil {
			if c.canGenerate(ctx) {
				return err
			}
		} else {
			return nil
		}
	}
	return c.caching.Uninstall(ctx)
}

func (c *chainedManager) Load(ctx context.Context) (*license.License, error) {
	if c.parent != nil {
		if lic, err := c.parent.Load(ctx); err == nil {
			return lic, nil
		}
	}
	if lic, err := c.caching.Load(ctx); err == nil {
		return lic, nil
	}

	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	// Retry under the lock: a concurrent generateIffNewFtp from another
	// goroutine may have installed an artifact between the attempt above
	// and acquiring storeMu.
	if lic, err := c.self.load(ctx); err == nil {
		return lic, nil
	}

	if err := c.generateIffNewFtp(ctx); err != nil {
		return nil, err
	}
	return c.self.load(ctx)
}

func (c *chainedManager) Verify(ctx context.Context) error {
	if c.parent != nil {
		if err := c.parent.Verify(ctx); err == nil {
			return nil
		}
	}
	if err := c.caching.Verify(ctx); err == nil {
		return nil
	}

	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	// Retry under the lock: a concurrent generateIffNewFtp from another
	// goroutine may have installed an artifact between the attempt above
	// and acquiring storeMu.
	if err := c.self.verify(ctx); err == nil {
		return nil
	}

	if err := c.generateIffNewFtp(ctx); err != nil {
		return err
	}
	return c.self.verify(ctx)
}

// canGenerate reports whether self may generate free trials: false
// without probing when FTPDays is not positive, otherwise whether self's
// Authentication is able to sign — a free-trial manager embeds a full
// vendor keystore even on the consumer side, so this is the capability
// latch of spec §4.5: probed once, since
// the embedded Authentication's signing capability can't change at
// runtime.
func (c *chainedManager) canGenerate(ctx context.Context) bool {
	c.ftpOnce.Do(func() {
		if c.self.params.FTPDays <= 0 {
			return
		}
		if _, err := c.self.generateKeyFrom(c.self.ctx.License()); err == nil {
			c.ftpCapable = true
		}
	})
	return c.ftpCapable
}

// generateIffNewFtp installs a fresh free-trial artifact into self's
// store, but only when the store is genuinely empty — it never overwrites
// an existing artifact, so a trial is granted exactly once per store
// identity (spec §4.4, invariant 9).
func (c *chainedManager) generateIffNewFtp(ctx context.Context) error {
	if !c.canGenerate(ctx) {
		return lmerrors.New(lmerrors.StoreFailure, messages.KeyUnknown).
			WithDetail("no license installed and this manager cannot generate a free trial")
	}

	exists, err := c.self.params.Store.Exists(ctx)
	if err != nil {
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	if exists {
		// The store holds an artifact that failed the load retried under
		// storeMu; it is never overwritten, and the caller's following load
		// reports that failure.
		return nil
	}

	now := c.self.ctx.Now()
	notAfter := now.AddDate(0, 0, c.self.params.FTPDays)
	lic := c.self.ctx.License()
	lic.NotBefore = &now
	lic.NotAfter = &notAfter
	gk, err := c.self.generateKeyFrom(lic)
	if err != nil {
		return err
	}
	return gk.SaveTo(ctx, c.self.params.Store)
}
