package config

// defaultNewsPublishers is the news-publisher allow-list used by influence scoring.
var defaultNewsPublishers = []string{
	"kompas.com", "kompas.id", "detik.com", "tempo.co", "cnnindonesia.com",
	"cnbcindonesia.com", "liputan6.com", "tribunnews.com", "okezone.com", "sindonews.com",
	"republika.co.id", "antaranews.com", "merdeka.com", "suara.com", "idntimes.com",
	"kumparan.com", "katadata.co.id", "bisnis.com", "kontan.co.id", "jpnn.com",
	"viva.co.id", "inews.id", "beritasatu.com", "mediaindonesia.com", "thejakartapost.com",
	"jawapos.com", "grid.id", "tirto.id", "kompasiana.com", "metrotvnews.com",
	"medcom.id", "tvonenews.com", "pikiran-rakyat.com", "fajar.co.id", "sindonews.net",
	"harianjogja.com", "solopos.com", "bola.com", "goal.com", "wartaekonomi.co.id",
	"investor.id", "ayobandung.com", "inilah.com", "rmol.id", "gatra.com",
	"akurat.co", "law-justice.co", "voi.id", "hops.id", "kabar24.bisnis.com",
	"nasional.kompas.com", "news.detik.com", "finance.detik.com", "ekonomi.bisnis.com", "money.kompas.com",
	"bbc.com", "reuters.com", "apnews.com", "bloomberg.com", "cnn.com",
	"nytimes.com", "theguardian.com", "aljazeera.com", "straitstimes.com", "scmp.com",
	"channelnewsasia.com", "ft.com", "wsj.com", "washingtonpost.com", "forbes.com",
}
