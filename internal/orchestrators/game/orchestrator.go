// Package game implements the game orchestrator: the single reducer that
// owns the player, the active encounter list, and the combat log, and
// sequences spawn ticks, combat ticks, and inventory actions over them.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/oakmund/grindstone/internal/orchestrators/game Service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oakmund/grindstone/internal/combat"
	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/clock"
	"github.com/oakmund/grindstone/internal/progression"
	"github.com/oakmund/grindstone/internal/repositories/gamestate"
)

// DefaultSaveSlot is used when the config names none
const DefaultSaveSlot = "default"

// MinCombatInterval is the hard floor the attack-speed scaling can never
// push the combat tick below.
const MinCombatInterval = 100 * time.Millisecond

// Service defines the interface for game operations
type Service interface {
	// Ticks
	SpawnEnemy(ctx context.Context, input *SpawnEnemyInput) (*SpawnEnemyOutput, error)
	SpawnTick(ctx context.Context, input *SpawnTickInput) (*SpawnTickOutput, error)
	CombatTick(ctx context.Context, input *CombatTickInput) (*CombatTickOutput, error)
	ResolveCombat(ctx context.Context, input *ResolveCombatInput) (*ResolveCombatOutput, error)

	// Itemization
	GenerateLoot(ctx context.Context, input *GenerateLootInput) (*GenerateLootOutput, error)
	ResolveGem(ctx context.Context, input *ResolveGemInput) (*ResolveGemOutput, error)

	// Inventory and build actions; missing ids are silent no-ops
	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)
	SellItem(ctx context.Context, input *SellItemInput) (*SellItemOutput, error)
	SocketStone(ctx context.Context, input *SocketStoneInput) (*SocketStoneOutput, error)
	AttachSupportGem(ctx context.Context, input *AttachSupportGemInput) (*AttachSupportGemOutput, error)
	DetachSupportGem(ctx context.Context, input *DetachSupportGemInput) (*DetachSupportGemOutput, error)
	AssignSkill(ctx context.Context, input *AssignSkillInput) (*AssignSkillOutput, error)

	// State
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
	LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error)
	NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Spawner  *combat.Spawner
	Resolver *combat.Resolver
	Ledger   *progression.Ledger
	Repo     gamestate.Repository

	// Clock defaults to the real clock
	Clock clock.Clock
	// SaveSlot defaults to DefaultSaveSlot
	SaveSlot string
	// MaxEnemies defaults to the content cap
	MaxEnemies int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Spawner == nil {
		vb.RequiredField("Spawner")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Ledger == nil {
		vb.RequiredField("Ledger")
	}
	if c.Repo == nil {
		vb.RequiredField("Repo")
	}

	return vb.Build()
}

type orchestrator struct {
	spawner  *combat.Spawner
	resolver *combat.Resolver
	ledger   *progression.Ledger
	repo     gamestate.Repository
	clock    clock.Clock

	saveSlot   string
	maxEnemies int

	// mu guards the live state below. Every mutation replaces the player
	// and enemy snapshots wholesale; readers get deep copies.
	mu      sync.RWMutex
	player  *entities.Player
	enemies []*entities.Enemy
	log     []string
}

// NewOrchestrator creates a game orchestrator with the provided
// dependencies, starting from a fresh default character. Call LoadGame to
// pick up a saved slot.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	slot := cfg.SaveSlot
	if slot == "" {
		slot = DefaultSaveSlot
	}
	maxEnemies := cfg.MaxEnemies
	if maxEnemies <= 0 {
		maxEnemies = content.MaxActiveEnemies
	}

	o := &orchestrator{
		spawner:    cfg.Spawner,
		resolver:   cfg.Resolver,
		ledger:     cfg.Ledger,
		repo:       cfg.Repo,
		clock:      c,
		saveSlot:   slot,
		maxEnemies: maxEnemies,
		player:     content.NewDefaultPlayer(),
	}
	o.player.Calculated = progression.Recompute(o.player)
	o.player.HP = o.player.Calculated.MaxHP
	o.player.Mana = o.player.Calculated.MaxMana
	return o, nil
}

// CombatInterval scales the base tick interval by the player's attack
// speed, never dropping below the hard floor.
func CombatInterval(base time.Duration, attackSpeed float64) time.Duration {
	if attackSpeed <= 0 {
		attackSpeed = 1
	}
	scaled := time.Duration(float64(base) / attackSpeed)
	if scaled < MinCombatInterval {
		return MinCombatInterval
	}
	return scaled
}

func (o *orchestrator) SpawnEnemy(ctx context.Context, input *SpawnEnemyInput) (*SpawnEnemyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.enemies) >= o.maxEnemies {
		return &SpawnEnemyOutput{}, nil
	}

	level := input.Level
	if level <= 0 {
		level = o.player.Level
	}

	enemy := o.spawner.Spawn(level, input.Kind)
	o.enemies = append(o.enemies, enemy)
	o.appendLog(fmt.Sprintf("%s appeared", enemy.Name))
	o.persist(ctx)

	return &SpawnEnemyOutput{Enemy: enemy.Clone()}, nil
}

func (o *orchestrator) SpawnTick(ctx context.Context, input *SpawnTickInput) (*SpawnTickOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	out := &SpawnTickOutput{}
	if len(o.enemies) >= o.maxEnemies {
		return out, nil
	}

	enemy := o.spawner.Spawn(o.player.Level, "")
	o.enemies = append(o.enemies, enemy)
	o.appendLog(fmt.Sprintf("%s appeared", enemy.Name))
	o.persist(ctx)

	out.Spawned = append(out.Spawned, enemy.Clone())
	return out, nil
}

func (o *orchestrator) CombatTick(ctx context.Context, input *CombatTickInput) (*CombatTickOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// Snapshot the ids up front: enemies spawned while the batch runs wait
	// for the next tick, and enemies removed mid-batch are skipped.
	ids := make([]string, 0, len(o.enemies))
	for _, e := range o.enemies {
		ids = append(ids, e.ID)
	}

	out := &CombatTickOutput{}
	for _, id := range ids {
		if o.player.HP <= 0 {
			break
		}
		enemy := o.enemyByID(id)
		if enemy == nil {
			continue
		}
		result, kill := o.resolveOne(enemy)
		out.Results = append(out.Results, result)
		if kill != nil {
			out.Kills = append(out.Kills, kill)
		}
	}

	o.regenerateMana()
	o.persist(ctx)
	return out, nil
}

// regenerateMana applies one combat tick of mana regeneration, in whole
// points, capped at max mana. Caller holds the write lock.
func (o *orchestrator) regenerateMana() {
	regen := int(o.player.Calculated.ManaRegen)
	if regen <= 0 || o.player.HP <= 0 || o.player.Mana >= o.player.Calculated.MaxMana {
		return
	}
	p := o.player.Clone()
	p.Mana += regen
	if p.Mana > p.Calculated.MaxMana {
		p.Mana = p.Calculated.MaxMana
	}
	o.player = p
}

func (o *orchestrator) ResolveCombat(ctx context.Context, input *ResolveCombatInput) (*ResolveCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	enemy := o.enemyByID(input.EnemyID)
	if enemy == nil {
		return &ResolveCombatOutput{}, nil
	}

	result, kill := o.resolveOne(enemy)
	o.persist(ctx)

	return &ResolveCombatOutput{Found: true, Result: result, Kill: kill}, nil
}

// resolveOne runs one exchange against the enemy and merges the outcome
// into the live state. Caller holds the write lock.
func (o *orchestrator) resolveOne(enemy *entities.Enemy) (combat.Result, *progression.KillResult) {
	result := o.resolver.Resolve(o.player, enemy)

	o.player = result.Player
	o.replaceEnemy(result.Enemy)
	o.appendLog(result.Message)

	if !result.EnemyDefeated {
		return result, nil
	}

	kill := o.ledger.ApplyKill(o.player, result.Enemy)
	o.player = kill.Player
	o.removeEnemy(result.Enemy.ID)
	o.appendLog(kill.Messages...)
	return result, kill
}

func (o *orchestrator) GenerateLoot(ctx context.Context, input *GenerateLootInput) (*GenerateLootOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	level := input.Level
	if level <= 0 {
		level = o.player.Level
	}
	return &GenerateLootOutput{Items: o.ledger.GenerateLoot(level, input.IsBoss)}, nil
}

func (o *orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	out := &GetStateOutput{
		Player: o.player.Clone(),
		Log:    append([]string(nil), o.log...),
	}
	out.Enemies = make([]*entities.Enemy, 0, len(o.enemies))
	for _, e := range o.enemies {
		out.Enemies = append(out.Enemies, e.Clone())
	}
	return out, nil
}

func (o *orchestrator) LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{Slot: o.saveSlot})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load game")
		}
		o.mu.Lock()
		defer o.mu.Unlock()
		o.resetToDefault()
		return &LoadGameOutput{}, nil
	}

	player, enemies := loadOut.Bundle.Restore()
	player.Calculated = progression.Recompute(player)
	if player.HP > player.Calculated.MaxHP {
		player.HP = player.Calculated.MaxHP
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.player = player
	o.enemies = enemies
	o.log = nil
	o.appendLog("game loaded")

	return &LoadGameOutput{Loaded: true}, nil
}

func (o *orchestrator) NewGame(ctx context.Context, input *NewGameInput) (*NewGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	if _, err := o.repo.Delete(ctx, gamestate.DeleteInput{Slot: o.saveSlot}); err != nil {
		return nil, errors.Wrap(err, "failed to wipe save slot")
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.resetToDefault()
	o.persist(ctx)

	return &NewGameOutput{}, nil
}

// resetToDefault swaps in a fresh character. Caller holds the write lock.
func (o *orchestrator) resetToDefault() {
	o.player = content.NewDefaultPlayer()
	o.player.Calculated = progression.Recompute(o.player)
	o.player.HP = o.player.Calculated.MaxHP
	o.player.Mana = o.player.Calculated.MaxMana
	o.enemies = nil
	o.log = nil
	o.appendLog("a new journey begins")
}

// enemyByID returns the live enemy with the id, or nil. Caller holds the
// lock.
func (o *orchestrator) enemyByID(id string) *entities.Enemy {
	for _, e := range o.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (o *orchestrator) replaceEnemy(enemy *entities.Enemy) {
	for i, e := range o.enemies {
		if e.ID == enemy.ID {
			o.enemies[i] = enemy
			return
		}
	}
}

func (o *orchestrator) removeEnemy(id string) {
	for i, e := range o.enemies {
		if e.ID == id {
			o.enemies = append(o.enemies[:i], o.enemies[i+1:]...)
			return
		}
	}
}

// appendLog prepends messages so the newest entry is first, trimming to the
// cap. Caller holds the write lock.
func (o *orchestrator) appendLog(messages ...string) {
	if len(messages) == 0 {
		return
	}
	// Newest of the batch first.
	batch := make([]string, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		batch = append(batch, messages[i])
	}
	o.log = append(batch, o.log...)
	if len(o.log) > content.CombatLogCap {
		o.log = o.log[:content.CombatLogCap]
	}
}

// persist writes the current state to the save slot. Failures are logged
// and never propagated: a broken save backend must not stop the game loop.
// Caller holds the write lock.
func (o *orchestrator) persist(ctx context.Context) {
	bundle := entities.NewSaveBundle(o.player, o.enemies, o.clock.Now().UTC())
	if _, err := o.repo.Save(ctx, gamestate.SaveInput{Slot: o.saveSlot, Bundle: bundle}); err != nil {
		slog.Error("failed to persist game state", "slot", o.saveSlot, "error", err)
	}
}
