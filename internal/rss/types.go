// rss реализует service.Parser для RSS 2.0 лент с вакансиями и результатами.
package rss

// rss - корневая структура RSS-ленты.
type rss struct {
	Channel channel `xml:"channel"`
}

// channel - RSS-канал. Title канала - это, как правило, ведомство-издатель.
type channel struct {
	Title string `xml:"title"`
	Items []item `xml:"item"`
}

// item описывает одно объявление в ленте.
type item struct {
	Title string `xml:"title"`
	// Link - ссылка на первоисточник. Если пустая, пробуем guid.
	Link        string   `xml:"link"`
	GUID        guid     `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	// ContentHTML - расширение content:encoded с полным HTML-телом.
	ContentHTML string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
}

// guid - <guid> с атрибутом isPermaLink.
type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}
