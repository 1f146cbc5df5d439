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
	"time"

	"github.com/jellydator/ttlcache/v3"

	licctx "github.com/licensecore/licensecore/pkg/context"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/store"
)

// cachingManager decorates a Manager with a TTL cache over the decoded,
// authenticated bean — spec §4.4's "decodeLicense(source) → License" cell.
// Load serves straight from it; Verify re-derives the pass/fail answer by
// running validation fresh against the cached bean on every call, since a
// license's time-window validity changes from one instant to the next even
// when nothing about the installed artifact has.
type cachingManager struct {
	ctx   *licctx.Context
	inner Manager

	mu       sync.Mutex
	licCache *ttlcache.Cache[string, *license.License]
	ttl      time.Duration
}

const cacheKey = "installed"

// newCaching wraps inner with a Load/Verify cache of the given TTL. A
// non-positive ttl disables caching; newCaching then returns inner
// unwrapped so callers never pay cache overhead for "never cache".
func newCaching(ctx *licctx.Context, inner Manager, ttl time.Duration) Manager {
	if ttl <= 0 {
		return inner
	}
	cache := ttlcache.New[string, *license.License](
		ttlcache.WithTTL[string, *license.License](ttl),
		ttlcache.WithDisableTouchOnHit[string, *license.License](),
	)
	return &cachingManager{ctx: ctx, inner: inner, licCache: cache, ttl: ttl}
}

// Generate implements Manager. Generation never touches the cache: two
// calls to Generate with the same bean needn't produce byte-identical
// artifacts (timestamps, nonces), so caching it would be observably wrong.
func (c *cachingManager) Generate(ctx context.Context, lic *license.License) (*GeneratedKey, error) {
	return c.inner.Generate(ctx, lic)
}

// Install implements Manager, invalidating any cached Load/Verify result
// for the artifact it replaces.
func (c *cachingManager) Install(ctx context.Context, src store.Source) error {
	if err := c.inner.Install(ctx, src); err != nil {
		return err
	}
	c.mu.Lock()
	c.licCache.Delete(cacheKey)
	c.mu.Unlock()
	return nil
}

// Load implements Manager, serving a cached bean within the TTL window
// instead of re-reading, decompressing, decrypting and verifying the
// installed artifact on every call.
func (c *cachingManager) Load(ctx context.Context) (*license.License, error) {
	c.mu.Lock()
	item := c.licCache.Get(cacheKey)
	c.mu.Unlock()
	if item != nil {
		return item.Value(), nil
	}

	lic, err := c.inner.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.licCache.Set(cacheKey, lic, c.ttl)
	c.mu.Unlock()
	return lic, nil
}

// Verify implements Manager by serving the decoded bean from the same
// cache Load uses, then validating it fresh — a cache hit still re-checks
// the time window, so a license that expires mid-TTL is caught on the
// next Verify rather than reported as valid until the cache entry ages out.
func (c *cachingManager) Verify(ctx context.Context) error {
	lic, err := c.Load(ctx)
	if err != nil {
		return err
	}
	return c.ctx.Validation().Validate(lic)
}

// Uninstall implements Manager, clearing the cache along with the store.
func (c *cachingManager) Uninstall(ctx context.Context) error {
	if err := c.inner.Uninstall(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.licCache.Delete(cacheKey)
	c.mu.Unlock()
	return nil
}
