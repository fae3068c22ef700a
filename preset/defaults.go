package preset

// DefaultLabel is the entry a fresh editor starts on.
const DefaultLabel = "YouTube Thumbnail"

var defaultGroups = []Group{
	{
		Category: "Video & Streaming",
		Icon:     "monitor-play",
		Color:    "text-red-500",
		Entries: []Entry{
			{Label: "YouTube Thumbnail", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "Kick Cover", Width: 1920, Height: 1080, Ratio: "16:9"},
			{Label: "Rumble Thumbnail", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "Vimeo Thumbnail", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "Dailymotion Thumb", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "Twitch Offline", Width: 1920, Height: 1080, Ratio: "16:9"},
			{Label: "Wistia Thumb", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "Brightcove Poster", Width: 1280, Height: 720, Ratio: "16:9"},
		},
	},
	{
		Category: "Short-Form (9:16)",
		Icon:     "smartphone",
		Color:    "text-purple-500",
		Entries: []Entry{
			{Label: "TikTok Video", Width: 1080, Height: 1920, Ratio: "9:16"},
			{Label: "IG Reel / Story", Width: 1080, Height: 1920, Ratio: "9:16"},
			{Label: "YouTube Shorts", Width: 1080, Height: 1920, Ratio: "9:16"},
			{Label: "Snapchat Story", Width: 1080, Height: 1920, Ratio: "9:16"},
			{Label: "Pinterest Pin", Width: 1000, Height: 1500, Ratio: "2:3"},
			{Label: "Idea Pin", Width: 1080, Height: 1920, Ratio: "9:16"},
		},
	},
	{
		Category: "Social Media",
		Icon:     "share-2",
		Color:    "text-blue-500",
		Entries: []Entry{
			{Label: "Instagram Square", Width: 1080, Height: 1080, Ratio: "1:1"},
			{Label: "Instagram Portrait", Width: 1080, Height: 1350, Ratio: "4:5"},
			{Label: "X / Twitter Post", Width: 1200, Height: 675, Ratio: "16:9"},
			{Label: "X Header", Width: 1500, Height: 500, Ratio: "3:1"},
			{Label: "Facebook Post", Width: 1200, Height: 630, Ratio: "1.91:1"},
			{Label: "Facebook Cover", Width: 820, Height: 312, Ratio: "2.63:1"},
			{Label: "LinkedIn Post", Width: 1200, Height: 627, Ratio: "1.91:1"},
			{Label: "Threads Post", Width: 1080, Height: 1080, Ratio: "1:1"},
		},
	},
	{
		Category: "Community",
		Icon:     "message-square",
		Color:    "text-green-500",
		Entries: []Entry{
			{Label: "Discord Banner", Width: 600, Height: 240, Ratio: "2.5:1"},
			{Label: "Reddit Post", Width: 1200, Height: 628, Ratio: "1.91:1"},
			{Label: "Telegram Image", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "WhatsApp Status", Width: 1080, Height: 1920, Ratio: "9:16"},
		},
	},
	{
		Category: "Publishing & Edu",
		Icon:     "book-open",
		Color:    "text-orange-500",
		Entries: []Entry{
			{Label: "Medium Standard", Width: 1400, Height: 1400, Ratio: "1:1"},
			{Label: "Medium Banner", Width: 1400, Height: 400, Ratio: "3.5:1"},
			{Label: "Substack Hero", Width: 1456, Height: 819, Ratio: "16:9"},
			{Label: "Udemy Course", Width: 750, Height: 422, Ratio: "16:9"},
			{Label: "Skillshare Class", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "Gumroad Cover", Width: 1280, Height: 720, Ratio: "16:9"},
		},
	},
	{
		Category: "E-Commerce & Gaming",
		Icon:     "shopping-bag",
		Color:    "text-pink-600",
		Entries: []Entry{
			{Label: "Shopify Hero", Width: 1600, Height: 900, Ratio: "16:9"},
			{Label: "Product Square", Width: 1024, Height: 1024, Ratio: "1:1"},
			{Label: "Etsy Listing", Width: 2000, Height: 1500, Ratio: "4:3"},
			{Label: "Roblox Thumbnail", Width: 1280, Height: 720, Ratio: "16:9"},
			{Label: "Steam Capsule", Width: 616, Height: 353, Ratio: "16:9"},
			{Label: "Patreon Post", Width: 1600, Height: 400, Ratio: "4:1"},
		},
	},
	{
		Category: "Professional",
		Icon:     "briefcase",
		Color:    "text-slate-500",
		Entries: []Entry{
			{Label: "Upwork Project", Width: 1000, Height: 750, Ratio: "4:3"},
			{Label: "Fiverr Gig", Width: 1280, Height: 769, Ratio: "16:9"},
			{Label: "Fiverr Profile", Width: 600, Height: 600, Ratio: "1:1"},
			{Label: "Polywork", Width: 1200, Height: 630, Ratio: "1.91:1"},
		},
	},
	{
		Category: "News & Discovery",
		Icon:     "newspaper",
		Color:    "text-sky-600",
		Entries: []Entry{
			{Label: "Google Discover", Width: 1200, Height: 800, Ratio: "3:2"},
			{Label: "Google News", Width: 1200, Height: 675, Ratio: "16:9"},
		},
	},
	{
		Category: "Other / Creative",
		Icon:     "layers",
		Color:    "text-indigo-500",
		Entries: []Entry{
			{Label: "Spotify Cover", Width: 640, Height: 640, Ratio: "1:1"},
			{Label: "Podcast Cover", Width: 3000, Height: 3000, Ratio: "1:1"},
			{Label: "SoundCloud Art", Width: 1000, Height: 1000, Ratio: "1:1"},
			{Label: "Dribbble Shot", Width: 1600, Height: 1200, Ratio: "4:3"},
			{Label: "Wattpad Cover", Width: 512, Height: 800, Ratio: "2:3"},
		},
	},
}

// DefaultCatalog builds the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultGroups)
	if err != nil {
		panic("preset: built-in catalog is invalid: " + err.Error())
	}
	return c
}
