package assets

import (
	"fmt"
	"strconv"
)

// Url of a versioned image asset.
func (dm *DataManager) versionedImageURL(group string, file string) string {
	if file == "" {
		return ""
	}
	return fmt.Sprintf("%scdn/%s/img/%s/%s", dm.baseURL, dm.version, group, file)
}

// Url of a champion splash art. Splash arts are not versioned.
func (dm *DataManager) splashURL(championID string, skinNum int) string {
	return fmt.Sprintf("%scdn/img/champion/splash/%s_%d.jpg", dm.baseURL, championID, skinNum)
}

// Get the image file name of a entry, falling back to the id.
func imageFile(doc Document, id string) string {
	if img := getMapOrDefault(doc, "image"); img != nil {
		if full := getStringOrDefault(img, "full"); full != "" {
			return full
		}
	}
	return id + ".png"
}

// ChampionImageURL returns the default splash art url of a champion.
func (dm *DataManager) ChampionImageURL(nameOrID string) string {
	id, ok := dm.resolve(KindChampion, nameOrID)
	if !ok {
		return ""
	}
	return dm.splashURL(id, 0)
}

// ChampionIconURL returns the square icon url of a champion.
func (dm *DataManager) ChampionIconURL(nameOrID string) string {
	id, ok := dm.resolve(KindChampion, nameOrID)
	if !ok {
		return ""
	}
	return dm.versionedImageURL("champion", imageFile(dm.entry(KindChampion, id), id))
}

// ChampionSkinImageURL returns the splash art of a given skin number.
func (dm *DataManager) ChampionSkinImageURL(nameOrID string, skinNum string) string {
	id, ok := dm.resolve(KindChampion, nameOrID)
	if !ok {
		return ""
	}
	num, err := strconv.Atoi(skinNum)
	if err != nil || num < 0 {
		return ""
	}
	return dm.splashURL(id, num)
}

// SpellIconURL returns the icon url of a champion ability image.
func (dm *DataManager) SpellIconURL(file string) string {
	return dm.versionedImageURL("spell", file)
}

// PassiveIconURL returns the icon url of a champion passive image.
func (dm *DataManager) PassiveIconURL(file string) string {
	return dm.versionedImageURL("passive", file)
}

// ItemImageURL returns the icon url of a item.
func (dm *DataManager) ItemImageURL(id string) string {
	doc := dm.entry(KindItem, id)
	if doc == nil {
		return ""
	}
	return dm.versionedImageURL("item", imageFile(doc, id))
}
