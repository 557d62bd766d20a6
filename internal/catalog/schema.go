package catalog

import "slices"

// SchemaVersion is the version written with every saved snapshot.
//
// Version 0 is data written before versioning: slices may be null, a song may
// hold several ratings from one user, and albums carry no artistId.
const SchemaVersion = 1

// Upgrade brings a snapshot read at version from up to SchemaVersion.
func Upgrade(snap Snapshot, version int) Snapshot {
	if version >= SchemaVersion {
		return Normalize(snap)
	}
	snap = Normalize(snap)
	for i, s := range snap.Songs {
		s.Ratings = dedupeRatings(s.Ratings)
		snap.Songs[i] = s
	}
	snap.Albums = LinkAlbumArtists(snap.Albums, snap.Artists)
	return snap
}

// Normalize replaces null collections with empty ones. The returned snapshot
// does not share slices with snap.
func Normalize(snap Snapshot) Snapshot {
	snap.Songs = slices.Clone(snap.Songs)
	snap.Albums = slices.Clone(snap.Albums)
	snap.Artists = slices.Clone(snap.Artists)
	if snap.Songs == nil {
		snap.Songs = []Song{}
	}
	if snap.Albums == nil {
		snap.Albums = []Album{}
	}
	if snap.Artists == nil {
		snap.Artists = []Artist{}
	}
	for i := range snap.Songs {
		if snap.Songs[i].Ratings == nil {
			snap.Songs[i].Ratings = []Rating{}
		}
	}
	for i := range snap.Albums {
		if snap.Albums[i].Songs == nil {
			snap.Albums[i].Songs = []string{}
		}
	}
	for i := range snap.Artists {
		if snap.Artists[i].Songs == nil {
			snap.Artists[i].Songs = []string{}
		}
	}
	return snap
}

// LinkAlbumArtists sets artistId on albums that lack one, using the artist
// whose name matches the album's artistName. Albums with no match keep an
// empty artistId.
func LinkAlbumArtists(albums []Album, artists []Artist) []Album {
	out := make([]Album, len(albums))
	for i, a := range albums {
		if a.ArtistID == "" {
			if artist, ok := artistByName(artists, a.ArtistName); ok {
				a.ArtistID = artist.ID
			}
		}
		out[i] = a
	}
	return out
}
