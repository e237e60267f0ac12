package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/oakmund/grindstone/internal/combat"
	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/itemization"
	"github.com/oakmund/grindstone/internal/orchestrators/game"
	"github.com/oakmund/grindstone/internal/pkg/clock"
	"github.com/oakmund/grindstone/internal/pkg/idgen"
	"github.com/oakmund/grindstone/internal/pkg/rng"
	"github.com/oakmund/grindstone/internal/progression"
	"github.com/oakmund/grindstone/internal/repositories/gamestate"
	gamestatemock "github.com/oakmund/grindstone/internal/repositories/gamestate/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *gamestatemock.MockRepository
	ctx      context.Context
	now      time.Time
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = gamestatemock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// newService wires real combat/progression components around the mocked
// repository. resolverSrc drives the combat rolls; everything else is
// seeded for reproducibility.
func (s *OrchestratorTestSuite) newService(resolverSrc rng.Source, maxEnemies int) game.Service {
	factorySrc := rng.NewSeeded(101)

	table, err := itemization.NewRarityTable(&itemization.RarityTableConfig{Source: factorySrc})
	s.Require().NoError(err)
	affixes, err := itemization.NewAffixRoller(&itemization.AffixRollerConfig{Source: factorySrc})
	s.Require().NoError(err)
	equipment, err := itemization.NewEquipmentFactory(&itemization.EquipmentFactoryConfig{
		RarityTable: table,
		AffixRoller: affixes,
		Source:      factorySrc,
		IDGenerator: idgen.NewSequential("item"),
	})
	s.Require().NoError(err)

	stoneTable, err := itemization.NewRarityTable(&itemization.RarityTableConfig{
		Source:  factorySrc,
		Weights: content.StoneRarityWeights,
	})
	s.Require().NoError(err)
	stones, err := itemization.NewStoneFactory(&itemization.StoneFactoryConfig{
		RarityTable: stoneTable,
		AffixRoller: affixes,
		Source:      factorySrc,
		IDGenerator: idgen.NewSequential("stone"),
	})
	s.Require().NoError(err)

	spawner, err := combat.NewSpawner(&combat.SpawnerConfig{
		IDGenerator: idgen.NewSequential("enemy"),
		Source:      rng.NewSeeded(103),
	})
	s.Require().NoError(err)
	resolver, err := combat.NewResolver(&combat.ResolverConfig{Source: resolverSrc})
	s.Require().NoError(err)
	ledger, err := progression.NewLedger(&progression.LedgerConfig{
		EquipmentFactory: equipment,
		StoneFactory:     stones,
		Source:           rng.NewSeeded(107),
	})
	s.Require().NoError(err)

	svc, err := game.NewOrchestrator(&game.Config{
		Spawner:    spawner,
		Resolver:   resolver,
		Ledger:     ledger,
		Repo:       s.mockRepo,
		Clock:      clock.NewFixed(s.now),
		MaxEnemies: maxEnemies,
	})
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) expectSaves() {
	s.mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(&gamestate.SaveOutput{}, nil).
		AnyTimes()
}

// loadState pushes a crafted player into the service through LoadGame
func (s *OrchestratorTestSuite) loadState(svc game.Service, player *entities.Player, enemies []*entities.Enemy) {
	bundle := entities.NewSaveBundle(player, enemies, s.now)
	s.mockRepo.EXPECT().
		Load(gomock.Any(), gamestate.LoadInput{Slot: game.DefaultSaveSlot}).
		Return(&gamestate.LoadOutput{Bundle: bundle}, nil)

	out, err := svc.LoadGame(s.ctx, &game.LoadGameInput{})
	s.Require().NoError(err)
	s.Require().True(out.Loaded)
}

func craftedPlayer() *entities.Player {
	return &entities.Player{
		ID:          "player_1",
		Name:        "Tester",
		Level:       10,
		NextLevelXP: 100,
		HP:          200,
		MaxHP:       200,
		Mana:        50,
		MaxMana:     50,
		Attributes: entities.Attributes{
			Strength: 20, Dexterity: 20, Intelligence: 20, Vitality: 20, Luck: 20,
		},
		Equipment: map[entities.Slot]*entities.Equipment{},
		SkillBar:  make([]string, entities.SkillBarSlots),
	}
}

func (s *OrchestratorTestSuite) TestSpawnTickRespectsPopulationCap() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(1), 2)

	first, err := svc.SpawnTick(s.ctx, &game.SpawnTickInput{})
	s.Require().NoError(err)
	s.Len(first.Spawned, 1)

	second, err := svc.SpawnTick(s.ctx, &game.SpawnTickInput{})
	s.Require().NoError(err)
	s.Len(second.Spawned, 1)

	third, err := svc.SpawnTick(s.ctx, &game.SpawnTickInput{})
	s.Require().NoError(err)
	s.Empty(third.Spawned, "cap reached")

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Len(state.Enemies, 2)
}

func (s *OrchestratorTestSuite) TestSpawnEnemyDefaultsToPlayerLevel() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(2), 8)

	out, err := svc.SpawnEnemy(s.ctx, &game.SpawnEnemyInput{Kind: entities.EnemyMelee})
	s.Require().NoError(err)
	s.Require().NotNil(out.Enemy)
	s.Equal(1, out.Enemy.Level, "fresh character is level 1")
}

func (s *OrchestratorTestSuite) TestResolveCombatMissingEnemyIsNoOp() {
	svc := s.newService(rng.NewSeeded(3), 8)

	out, err := svc.ResolveCombat(s.ctx, &game.ResolveCombatInput{EnemyID: "enemy_404"})
	s.Require().NoError(err)
	s.False(out.Found)
	s.Nil(out.Kill)
}

func (s *OrchestratorTestSuite) TestCombatTickResolvesSnapshotAndRemovesDead() {
	s.expectSaves()
	// Each exchange: hit, no crit, flat variance. Kills consume exactly
	// three draws so the cycle stays aligned.
	svc := s.newService(&rng.Fixed{Floats: []float64{0.0, 0.9, 0.5}}, 8)

	player := craftedPlayer()
	player.PassiveBonuses = map[entities.Stat]float64{entities.StatDamage: 100000}
	s.loadState(svc, player, []*entities.Enemy{
		{ID: "enemy_1", Name: "Marauder [1]", Kind: entities.EnemyMelee, Level: 1, HP: 60, MaxHP: 60, Damage: 5},
		{ID: "enemy_2", Name: "Skirmisher [1]", Kind: entities.EnemyRanged, Level: 1, HP: 60, MaxHP: 60, Damage: 5},
		{ID: "enemy_3", Name: "Hexweaver [1]", Kind: entities.EnemyCaster, Level: 1, HP: 60, MaxHP: 60, Damage: 5},
	})

	out, err := svc.CombatTick(s.ctx, &game.CombatTickInput{})
	s.Require().NoError(err)

	s.Len(out.Results, 3, "one exchange per enemy in the snapshot")
	s.Len(out.Kills, 3)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Empty(state.Enemies, "defeated enemies are removed")
	s.Greater(state.Player.XP+state.Player.Level, 1, "kills credited")
}

func (s *OrchestratorTestSuite) TestCombatLogCappedNewestFirst() {
	s.expectSaves()
	svc := s.newService(&rng.Fixed{Floats: []float64{0.0, 0.9, 0.5}}, 500)

	player := craftedPlayer()
	player.PassiveBonuses = map[entities.Stat]float64{entities.StatDamage: 100000}

	enemyIDs := idgen.NewSequential("log_enemy")
	enemies := make([]*entities.Enemy, 0, 300)
	for i := 0; i < 300; i++ {
		enemies = append(enemies, &entities.Enemy{
			ID: enemyIDs.Generate(), Name: "Marauder [1]",
			Kind: entities.EnemyMelee, Level: 1, HP: 10, MaxHP: 10, Damage: 1,
		})
	}
	s.loadState(svc, player, enemies)

	_, err := svc.CombatTick(s.ctx, &game.CombatTickInput{})
	s.Require().NoError(err)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Len(state.Log, content.CombatLogCap)
}

func (s *OrchestratorTestSuite) TestEquipItemFoldsStats() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(5), 8)

	player := craftedPlayer()
	player.Inventory = []entities.InventoryItem{{Equipment: &entities.Equipment{
		ID:        "item_sword",
		Name:      "Test Sword",
		Slot:      entities.SlotWeapon,
		Category:  entities.CategoryWeapon,
		Level:     1,
		BaseStats: map[entities.Stat]float64{entities.StatDamage: 50},
		Value:     10,
	}}}
	s.loadState(svc, player, nil)

	before, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)

	out, err := svc.EquipItem(s.ctx, &game.EquipItemInput{ItemID: "item_sword"})
	s.Require().NoError(err)
	s.True(out.Equipped)

	after, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Empty(after.Player.Inventory)
	s.NotNil(after.Player.Equipment[entities.SlotWeapon])
	s.Equal(before.Player.Calculated.Damage+50, after.Player.Calculated.Damage)
}

func (s *OrchestratorTestSuite) TestEquipItemUnmetRequirementsIsNoOp() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(6), 8)

	player := craftedPlayer()
	player.Inventory = []entities.InventoryItem{{Equipment: &entities.Equipment{
		ID:           "item_heavy",
		Name:         "Heavy Plate",
		Slot:         entities.SlotChest,
		Category:     entities.CategoryArmor,
		Requirements: map[entities.Stat]int{entities.StatStrength: 999},
	}}}
	s.loadState(svc, player, nil)

	out, err := svc.EquipItem(s.ctx, &game.EquipItemInput{ItemID: "item_heavy"})
	s.Require().NoError(err)
	s.False(out.Equipped)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Len(state.Player.Inventory, 1, "item stays in the inventory")
}

func (s *OrchestratorTestSuite) TestEquipSwapsPreviousItemBack() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(7), 8)

	player := craftedPlayer()
	player.Equipment[entities.SlotWeapon] = &entities.Equipment{
		ID: "item_old", Name: "Old Sword", Slot: entities.SlotWeapon,
		Category: entities.CategoryWeapon,
	}
	player.Inventory = []entities.InventoryItem{{Equipment: &entities.Equipment{
		ID: "item_new", Name: "New Sword", Slot: entities.SlotWeapon,
		Category: entities.CategoryWeapon,
	}}}
	s.loadState(svc, player, nil)

	out, err := svc.EquipItem(s.ctx, &game.EquipItemInput{ItemID: "item_new"})
	s.Require().NoError(err)
	s.True(out.Equipped)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal("item_new", state.Player.Equipment[entities.SlotWeapon].ID)
	s.Require().Len(state.Player.Inventory, 1)
	s.Equal("item_old", state.Player.Inventory[0].ID())
}

func (s *OrchestratorTestSuite) TestSellItem() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(8), 8)

	player := craftedPlayer()
	player.Inventory = []entities.InventoryItem{{Stone: &entities.Stone{
		ID: "stone_1", Name: "Dull Shard", Value: 37,
	}}}
	s.loadState(svc, player, nil)

	missing, err := svc.SellItem(s.ctx, &game.SellItemInput{ItemID: "stone_404"})
	s.Require().NoError(err)
	s.False(missing.Sold)

	out, err := svc.SellItem(s.ctx, &game.SellItemInput{ItemID: "stone_1"})
	s.Require().NoError(err)
	s.True(out.Sold)
	s.Equal(37, out.Gold)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal(37, state.Player.Gold)
	s.Empty(state.Player.Inventory)
}

func (s *OrchestratorTestSuite) TestSocketStone() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(9), 8)

	player := craftedPlayer()
	player.Equipment[entities.SlotWeapon] = &entities.Equipment{
		ID: "item_sword", Name: "Socketed Sword", Slot: entities.SlotWeapon,
		Category: entities.CategoryWeapon, MaxSockets: 1,
	}
	player.Inventory = []entities.InventoryItem{{Stone: &entities.Stone{
		ID: "stone_1", Name: "Ember Shard",
		Affixes:    []entities.Affix{{Stat: entities.StatDamage, Value: 12}},
		Compatible: []entities.Category{entities.CategoryWeapon},
	}}}
	s.loadState(svc, player, nil)

	before, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)

	out, err := svc.SocketStone(s.ctx, &game.SocketStoneInput{
		StoneID: "stone_1", EquipmentID: "item_sword",
	})
	s.Require().NoError(err)
	s.True(out.Socketed)

	// A second identical stone cannot fit: sockets are full.
	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Len(state.Player.Equipment[entities.SlotWeapon].Sockets, 1)
	s.Empty(state.Player.Inventory)
	s.Equal(before.Player.Calculated.Damage+12, state.Player.Calculated.Damage,
		"socketed stone affixes fold into the recompute")
}

func (s *OrchestratorTestSuite) TestSocketStoneIncompatibleCategoryIsNoOp() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(10), 8)

	player := craftedPlayer()
	player.Equipment[entities.SlotWeapon] = &entities.Equipment{
		ID: "item_sword", Name: "Sword", Slot: entities.SlotWeapon,
		Category: entities.CategoryWeapon, MaxSockets: 1,
	}
	player.Inventory = []entities.InventoryItem{{Stone: &entities.Stone{
		ID: "stone_1", Name: "Ward Shard",
		Compatible: []entities.Category{entities.CategoryArmor},
	}}}
	s.loadState(svc, player, nil)

	out, err := svc.SocketStone(s.ctx, &game.SocketStoneInput{
		StoneID: "stone_1", EquipmentID: "item_sword",
	})
	s.Require().NoError(err)
	s.False(out.Socketed)
}

func (s *OrchestratorTestSuite) TestAttachAndDetachSupportGem() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(11), 8)

	player := craftedPlayer()
	player.SkillGems = []*entities.SkillGem{{
		ID: "skill_1", Name: "Strike", Tags: []entities.Tag{entities.TagAttack},
		Level: 1, MaxLevel: 20, ManaCost: 5,
		Scaling: map[entities.Dimension]entities.Scaling{
			entities.DimDamage: {Base: 10},
		},
	}}
	player.SupportGems = []*entities.SupportGem{{
		ID: "support_1", Name: "Brutality",
		Modifiers: []entities.Modifier{
			{Dimension: entities.DimDamage, Kind: entities.ModifierPercent, Value: 1.0},
		},
	}}
	s.loadState(svc, player, nil)

	plain, err := svc.ResolveGem(s.ctx, &game.ResolveGemInput{SkillGemID: "skill_1"})
	s.Require().NoError(err)
	s.Require().True(plain.Found)

	attached, err := svc.AttachSupportGem(s.ctx, &game.AttachSupportGemInput{
		SkillGemID: "skill_1", SupportGemID: "support_1",
	})
	s.Require().NoError(err)
	s.True(attached.Attached)

	boosted, err := svc.ResolveGem(s.ctx, &game.ResolveGemInput{SkillGemID: "skill_1"})
	s.Require().NoError(err)
	s.Greater(boosted.Effect.Damage, plain.Effect.Damage)

	// The same support cannot attach twice.
	again, err := svc.AttachSupportGem(s.ctx, &game.AttachSupportGemInput{
		SkillGemID: "skill_1", SupportGemID: "support_1",
	})
	s.Require().NoError(err)
	s.False(again.Attached)

	detached, err := svc.DetachSupportGem(s.ctx, &game.DetachSupportGemInput{
		SkillGemID: "skill_1", SupportGemID: "support_1",
	})
	s.Require().NoError(err)
	s.True(detached.Detached)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Len(state.Player.SupportGems, 1, "detaching never deletes the gem")
	s.Empty(state.Player.SkillGems[0].Supports)
}

func (s *OrchestratorTestSuite) TestAssignSkill() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(12), 8)

	player := craftedPlayer()
	player.SkillGems = []*entities.SkillGem{{
		ID: "skill_1", Name: "Strike", Level: 1, MaxLevel: 20,
	}}
	s.loadState(svc, player, nil)

	badSlot, err := svc.AssignSkill(s.ctx, &game.AssignSkillInput{Slot: 99, SkillGemID: "skill_1"})
	s.Require().NoError(err)
	s.False(badSlot.Assigned)

	dangling, err := svc.AssignSkill(s.ctx, &game.AssignSkillInput{Slot: 0, SkillGemID: "skill_404"})
	s.Require().NoError(err)
	s.False(dangling.Assigned)

	ok, err := svc.AssignSkill(s.ctx, &game.AssignSkillInput{Slot: 2, SkillGemID: "skill_1"})
	s.Require().NoError(err)
	s.True(ok.Assigned)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal("skill_1", state.Player.SkillBar[2])
	s.True(state.Player.SkillGems[0].Equipped, "flag tracks the bar")

	cleared, err := svc.AssignSkill(s.ctx, &game.AssignSkillInput{Slot: 2})
	s.Require().NoError(err)
	s.True(cleared.Assigned)

	state, err = svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal("", state.Player.SkillBar[2])
	s.False(state.Player.SkillGems[0].Equipped)
}

func (s *OrchestratorTestSuite) TestCombatTickRegeneratesMana() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(14), 8)

	// 20 intelligence: 3 mana per tick toward a recomputed max of 150.
	s.loadState(svc, craftedPlayer(), nil)

	for i := 0; i < 2; i++ {
		_, err := svc.CombatTick(s.ctx, &game.CombatTickInput{})
		s.Require().NoError(err)
	}

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal(56, state.Player.Mana)
}

func (s *OrchestratorTestSuite) TestManaRegenCapsAtMaxMana() {
	s.expectSaves()
	svc := s.newService(rng.NewSeeded(15), 8)

	player := craftedPlayer()
	player.Attributes.Intelligence = 0 // recomputed max mana stays 50
	s.loadState(svc, player, nil)

	_, err := svc.CombatTick(s.ctx, &game.CombatTickInput{})
	s.Require().NoError(err)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal(50, state.Player.Mana)
}

func (s *OrchestratorTestSuite) TestGenerateLoot() {
	svc := s.newService(rng.NewSeeded(13), 8)

	out, err := svc.GenerateLoot(s.ctx, &game.GenerateLootInput{Level: 10, IsBoss: true})
	s.Require().NoError(err)
	s.NotEmpty(out.Items)
	for _, item := range out.Items {
		s.True(item.Valid())
	}
}

func (s *OrchestratorTestSuite) TestLoadGameMissingSlotStartsFresh() {
	s.mockRepo.EXPECT().
		Load(gomock.Any(), gamestate.LoadInput{Slot: game.DefaultSaveSlot}).
		Return(nil, errors.NotFound("slot default not found"))

	svc := s.newService(rng.NewSeeded(14), 8)

	out, err := svc.LoadGame(s.ctx, &game.LoadGameInput{})
	s.Require().NoError(err)
	s.False(out.Loaded)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal(1, state.Player.Level)
	s.NotEmpty(state.Player.SkillGems, "default character has starter gems")
}

func (s *OrchestratorTestSuite) TestNewGameWipesSlotAndState() {
	s.expectSaves()
	s.mockRepo.EXPECT().
		Delete(gomock.Any(), gamestate.DeleteInput{Slot: game.DefaultSaveSlot}).
		Return(&gamestate.DeleteOutput{}, nil)

	svc := s.newService(rng.NewSeeded(15), 8)

	player := craftedPlayer()
	player.Gold = 9999
	s.loadState(svc, player, nil)

	_, err := svc.NewGame(s.ctx, &game.NewGameInput{})
	s.Require().NoError(err)

	state, err := svc.GetState(s.ctx, &game.GetStateInput{})
	s.Require().NoError(err)
	s.Equal(1, state.Player.Level)
	s.Zero(state.Player.Gold)
	s.Empty(state.Enemies)
}

func (s *OrchestratorTestSuite) TestPersistFailureDoesNotPropagate() {
	s.mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("redis is down")).
		AnyTimes()

	svc := s.newService(rng.NewSeeded(16), 8)

	out, err := svc.SpawnEnemy(s.ctx, &game.SpawnEnemyInput{Kind: entities.EnemyMelee})
	s.Require().NoError(err, "a broken save backend never fails the action")
	s.NotNil(out.Enemy)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func TestCombatIntervalScaling(t *testing.T) {
	base := time.Second

	if got := game.CombatInterval(base, 2.0); got != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %v", got)
	}
	if got := game.CombatInterval(base, 0); got != base {
		t.Fatalf("non-positive speed falls back to base, got %v", got)
	}
	if got := game.CombatInterval(base, 1000); got != game.MinCombatInterval {
		t.Fatalf("expected the hard floor, got %v", got)
	}
}
