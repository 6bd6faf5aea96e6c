package scraper

import "time"

// seedFunc returns the built-in records used when no source yields anything
type seedFunc func(now time.Time) []Candidate

func days(now time.Time, n int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 10, 0, 0, 0, now.Location()).AddDate(0, 0, n)
}

func daysPtr(now time.Time, n int) *time.Time {
	t := days(now, n)
	return &t
}

func newsSeeds(now time.Time) []Candidate {
	return []Candidate{
		{
			Title:       "Hazır giyim ihracatında yeni pazar arayışları",
			Description: "Sektör temsilcileri Avrupa dışı pazarlarda yeni iş birliği fırsatlarını değerlendirdi.",
			Image:       "https://images.unsplash.com/photo-1558769132-cb1aea458c5e?w=1200",
			Source:      "seed",
			Date:        days(now, -1),
		},
		{
			Title:       "Tekstilde sürdürülebilir üretim çalıştayı tamamlandı",
			Description: "Geri dönüştürülmüş elyaf ve su tasarrufu uygulamaları üyelerle paylaşıldı.",
			Image:       "https://images.unsplash.com/photo-1523381210434-271e8be1f52b?w=1200",
			Source:      "seed",
			Date:        days(now, -2),
		},
	}
}

func legislationSeeds(now time.Time) []Candidate {
	return []Candidate{
		{
			Title:       "İhracat Rejimi Kararında Değişiklik Yapılmasına Dair Karar",
			Description: "İhracat işlemlerine ilişkin usul ve esaslarda yapılan güncellemeler.",
			Link:        "https://www.resmigazete.gov.tr/",
			Source:      "seed",
			Date:        days(now, -3),
		},
		{
			Title:       "Gümrük Yönetmeliğinde Değişiklik Yapılmasına Dair Yönetmelik",
			Description: "Gümrük beyannamesi ve basitleştirilmiş usullere ilişkin düzenlemeler.",
			Link:        "https://www.resmigazete.gov.tr/",
			Source:      "seed",
			Date:        days(now, -5),
		},
	}
}

func incentiveSeeds(now time.Time) []Candidate {
	return []Candidate{
		{
			Title:       "Pazara Giriş Belgeleri Desteği",
			Description: "Yurt dışı pazarlara giriş için gerekli belgelendirme giderlerinin desteklenmesi.",
			Link:        "https://www.ticaret.gov.tr/destekler",
			Source:      "seed",
			Date:        days(now, -7),
		},
		{
			Title:       "Yurt Dışı Fuar Katılım Desteği",
			Description: "Yurt dışında düzenlenen sektörel fuarlara katılım giderlerinin desteklenmesi.",
			Link:        "https://www.ticaret.gov.tr/destekler",
			Source:      "seed",
			Date:        days(now, -10),
		},
	}
}

func reportSeeds(now time.Time) []Candidate {
	return []Candidate{
		{
			Title:       "Tekstil ve Hazır Giyim Sektör Raporu",
			Description: "Üretim, ihracat ve istihdam göstergelerine ilişkin dönemsel değerlendirme.",
			Source:      "seed",
			Date:        days(now, -14),
		},
	}
}

func trainingSeeds(now time.Time) []Candidate {
	return []Candidate{
		{
			Title:       "Dış Ticarette Gümrük Mevzuatı Eğitimi",
			Description: "Gümrük işlemleri ve beyan süreçleri üzerine uygulamalı eğitim.",
			Location:    "İstanbul",
			Source:      "seed",
			Date:        days(now, 21),
		},
		{
			Title:       "E-İhracat ve Dijital Pazarlama Eğitimi",
			Description: "Pazar yerleri üzerinden ihracat ve dijital pazarlama stratejileri.",
			Location:    "Online",
			Source:      "seed",
			Date:        days(now, 35),
		},
	}
}

func fairSeeds(now time.Time) []Candidate {
	return []Candidate{
		{
			Title:       "ITM Uluslararası Tekstil Makineleri Fuarı",
			Description: "Tekstil makineleri ve teknolojileri alanında uluslararası fuar.",
			Location:    "İstanbul Fuar Merkezi",
			Source:      "seed",
			Date:        days(now, 45),
			EndDate:     daysPtr(now, 50),
		},
		{
			Title:       "Texworld Paris",
			Description: "Kumaş ve tekstil tedarikçilerinin buluştuğu uluslararası fuar.",
			Location:    "Paris",
			Source:      "seed",
			Date:        days(now, 60),
			EndDate:     daysPtr(now, 63),
		},
	}
}

func projectSeeds(now time.Time) []Candidate {
	return []Candidate{
		{
			Title:       "Tekstilde Yeşil Dönüşüm Projesi",
			Description: "Üye firmalarda enerji verimliliği ve karbon ayak izi azaltımı çalışmaları.",
			Source:      "seed",
			Date:        days(now, 30),
			EndDate:     daysPtr(now, 395),
		},
	}
}
