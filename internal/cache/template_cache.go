package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	templateKeyPrefix  = "template:"
	DefaultTemplateTTL = 10 * time.Minute
)

// TemplateCache is a read-through cache in front of the email_templates table.
// A Redis failure never fails a lookup; the store is queried instead.
type TemplateCache struct {
	store  db.Querier
	client *redis.Client
	ttl    time.Duration
}

func NewTemplateCache(store db.Querier, client *redis.Client, ttl time.Duration) *TemplateCache {
	if ttl <= 0 {
		ttl = DefaultTemplateTTL
	}
	
	return &TemplateCache{
		store:  store,
		client: client,
		ttl:    ttl,
	}
}

// GetTemplate returns the template with the given id, or db.ErrRecordNotFound.
// Ids that are not valid UUIDs cannot exist and are reported as not found.
func (c *TemplateCache) GetTemplate(ctx context.Context, id string) (db.EmailTemplate, error) {
	templateID, err := uuid.Parse(id)
	if err != nil {
		return db.EmailTemplate{}, db.ErrRecordNotFound
	}
	
	key := templateKeyPrefix + templateID.String()
	
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var template db.EmailTemplate
		if err = json.Unmarshal(data, &template); err == nil {
			return template, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("dropping corrupted cached template")
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("template cache unavailable, reading from db")
	}
	
	template, err := c.store.GetEmailTemplateByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return db.EmailTemplate{}, db.ErrRecordNotFound
		}
		return db.EmailTemplate{}, fmt.Errorf("failed to get template %s: %w", id, err)
	}
	
	c.set(ctx, key, template)
	return template, nil
}

// Invalidate drops the cached copy of a template after it was updated or deleted.
func (c *TemplateCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, templateKeyPrefix+id.String()).Err(); err != nil {
		log.Warn().Err(err).Str("template_id", id.String()).Msg("failed to invalidate cached template")
	}
}

func (c *TemplateCache) set(ctx context.Context, key string, template db.EmailTemplate) {
	data, err := json.Marshal(template)
	if err != nil {
		return
	}
	
	if err = c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache template")
	}
}
