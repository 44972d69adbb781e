package assets

import (
	"io"

	"lolbrowser/internal/testutil"
	"lolbrowser/pkg/logger"
)

const (
	testBaseURL  = "https://cdn.test/"
	testVersion  = "14.14.1"
	testLanguage = "en_US"

	championCatalogURL = testBaseURL + "cdn/14.14.1/data/en_US/champion.json"
	itemCatalogURL     = testBaseURL + "cdn/14.14.1/data/en_US/item.json"
	aatroxDetailURL    = testBaseURL + "cdn/14.14.1/data/en_US/champion/Aatrox.json"
)

// Champion catalog in Data Dragon shape. Keys are not sorted on purpose.
const championCatalogJSON = `{
  "type": "champion",
  "format": "standAloneComplex",
  "version": "14.14.1",
  "data": {
    "MonkeyKing": {
      "id": "MonkeyKing", "key": "62", "name": "Wukong", "title": "the Monkey King",
      "image": {"full": "MonkeyKing.png", "sprite": "champion4.png", "group": "champion", "x": 0, "y": 0, "w": 48, "h": 48},
      "tags": ["Fighter", "Tank"],
      "stats": {"hp": 610, "hpperlevel": 99, "armor": 31, "armorperlevel": 4.7, "movespeed": 340}
    },
    "Aatrox": {
      "id": "Aatrox", "key": "266", "name": "Aatrox", "title": "the Darkin Blade",
      "image": {"full": "Aatrox.png", "sprite": "champion0.png", "group": "champion", "x": 0, "y": 0, "w": 48, "h": 48},
      "tags": ["Fighter"],
      "stats": {"hp": 650, "hpperlevel": 114, "armor": 38, "armorperlevel": 4.8, "spellblock": 32, "spellblockperlevel": 2.05,
                "movespeed": 345, "attackdamage": 60, "attackdamageperlevel": 5, "attackspeed": 0.651, "attackspeedperlevel": 2.5,
                "attackrange": 175, "hpregen": 3, "hpregenperlevel": 1}
    },
    "Ahri": {
      "id": "Ahri", "key": "103", "name": "Ahri", "title": "the Nine-Tailed Fox",
      "tags": ["Mage", "Assassin"],
      "stats": {"hp": 590}
    }
  }
}`

// Detail document of Aatrox, the lore is a placeholder to tell fetches apart.
func aatroxDetailJSON(lore string) string {
	return `{
  "type": "champion",
  "data": {
    "Aatrox": {
      "id": "Aatrox", "key": "266", "name": "Aatrox", "title": "the Darkin Blade",
      "lore": "` + lore + `",
      "tags": ["Fighter"],
      "skins": [
        {"id": "266000", "num": 0, "name": "default", "chromas": false},
        {"id": "266001", "num": 1, "name": "Justicar Aatrox", "chromas": false}
      ],
      "allytips": ["Use Umbral Dash while casting The Darkin Blade.", "Crowd control helps land Infernal Chains."],
      "enemytips": ["Aatrox's attacks are telegraphed."],
      "spells": [
        {"id": "AatroxQ", "name": "The Darkin Blade", "description": "Aatrox slams his greatsword.", "image": {"full": "AatroxQ.png"}},
        {"id": "AatroxW", "name": "Infernal Chains", "description": "Aatrox smashes the ground.", "image": {"full": "AatroxW.png"}},
        {"id": "AatroxE", "name": "Umbral Dash", "description": "Aatrox dashes.", "image": {"full": "AatroxE.png"}},
        {"id": "AatroxR", "name": "World Ender", "description": "Aatrox unleashes his demonic form.", "image": {"full": "AatroxR.png"}}
      ],
      "passive": {"name": "Deathbringer Stance", "description": "Periodically empowers the next attack.", "image": {"full": "Aatrox_Passive.png"}}
    }
  }
}`
}

const itemCatalogJSON = `{
  "type": "item",
  "version": "14.14.1",
  "basic": {"name": "", "tags": []},
  "data": {
    "1001": {
      "name": "Boots of Speed",
      "description": "<mainText><stats><attention>25</attention> Move Speed</stats></mainText>",
      "plaintext": "Slightly increases Move Speed",
      "into": ["3006", "3047"],
      "image": {"full": "1001.png", "sprite": "item0.png", "group": "item", "x": 0, "y": 0, "w": 48, "h": 48},
      "gold": {"base": 300, "purchasable": true, "total": 300, "sell": 210},
      "tags": ["Boots"],
      "stats": {"FlatMovementSpeedMod": 25}
    },
    "3006": {
      "name": "Berserker's Greaves",
      "from": ["1001", "1042"],
      "image": {"full": "3006.png"},
      "gold": {"base": 500, "purchasable": true, "total": 1100, "sell": 770},
      "tags": ["Boots", "AttackSpeed"],
      "stats": {"PercentAttackSpeedMod": 0.35}
    },
    "3047": {
      "name": "Plated Steelcaps",
      "from": ["1001", "1029"],
      "gold": {"base": 500, "purchasable": true, "total": 1200, "sell": 840},
      "tags": [" boots ", "Armor"]
    },
    "2052": {
      "name": "Poro-Snax",
      "gold": {"base": 0, "purchasable": false, "total": 0, "sell": 0},
      "tags": ["Consumable"]
    },
    "223006": {
      "name": "Berserker's Greaves",
      "gold": {"base": 500, "purchasable": true, "total": 1100, "sell": 770},
      "tags": ["Boots"]
    }
  }
}`

func newTestLogger() *logger.NewLogger {
	return logger.NewConsoleLogger(io.Discard)
}

// Create a data manager over the fake fetcher, already filled with the default fixtures.
func setupTestManager(store KeyValueStore) (*DataManager, *testutil.FakeFetcher) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.SetBody(championCatalogURL, []byte(championCatalogJSON))
	fetcher.SetBody(itemCatalogURL, []byte(itemCatalogJSON))
	fetcher.SetBody(aatroxDetailURL, []byte(aatroxDetailJSON("first")))

	dm := NewDataManager(&DataManagerDeps{
		Fetcher:  fetcher,
		Logger:   newTestLogger(),
		Store:    store,
		StoreTTL: 0,
		BaseURL:  testBaseURL,
		Version:  testVersion,
		Language: testLanguage,
	})
	return dm, fetcher
}
